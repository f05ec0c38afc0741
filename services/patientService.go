package services

import (
	"context"
	"time"

	"KuskoDento/models"
	"KuskoDento/repositories"
	"KuskoDento/utils"

	"github.com/google/uuid"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if patient.RegistrationDate == "" {
		patient.RegistrationDate = time.Now().Format("2006-01-02")
	}
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
