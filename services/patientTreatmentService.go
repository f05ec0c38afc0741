package services

import (
	"context"

	"KuskoDento/models"
	"KuskoDento/repositories"

	"github.com/google/uuid"
)

type PatientTreatmentService struct {
	repository *repositories.PatientTreatmentRepository
}

func NewPatientTreatmentService(repository *repositories.PatientTreatmentRepository) *PatientTreatmentService {
	return &PatientTreatmentService{repository: repository}
}

func (s *PatientTreatmentService) Create(ctx context.Context, record *models.PatientTreatment) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return s.repository.Create(ctx, record)
}

func (s *PatientTreatmentService) Update(ctx context.Context, record *models.PatientTreatment) error {
	return s.repository.Update(ctx, record)
}

func (s *PatientTreatmentService) GetByID(ctx context.Context, id string) (*models.PatientTreatment, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientTreatmentService) GetAll(ctx context.Context) ([]models.PatientTreatment, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientTreatmentService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
