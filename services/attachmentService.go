package services

import (
	"context"
	"time"

	"KuskoDento/models"
	"KuskoDento/repositories"
	"KuskoDento/utils"

	"github.com/google/uuid"
)

// AttachmentService manages radiograph and consent files. Attachments are
// immutable once created except for deletion.
type AttachmentService struct {
	radiographs *repositories.RadiographRepository
	consents    *repositories.ConsentRepository
}

func NewAttachmentService(radiographs *repositories.RadiographRepository, consents *repositories.ConsentRepository) *AttachmentService {
	return &AttachmentService{radiographs: radiographs, consents: consents}
}

func (s *AttachmentService) CreateRadiograph(ctx context.Context, patientID, fileName, fileType string, fileBlob []byte) (*models.Radiograph, error) {
	if err := utils.ValidateAttachmentData(patientID, fileName, fileType, fileBlob); err != nil {
		return nil, err
	}
	radiograph := models.Radiograph{
		ID:        uuid.New().String(),
		PatientID: patientID,
		FileName:  fileName,
		FileType:  fileType,
		FileBlob:  fileBlob,
		Date:      time.Now().Format("2006-01-02"),
	}
	if err := s.radiographs.Create(ctx, &radiograph); err != nil {
		return nil, err
	}
	return &radiograph, nil
}

func (s *AttachmentService) GetRadiograph(ctx context.Context, id string) (*models.Radiograph, error) {
	return s.radiographs.GetByID(ctx, id)
}

func (s *AttachmentService) RadiographsByPatient(ctx context.Context, patientID string) ([]models.Radiograph, error) {
	return s.radiographs.GetByPatient(ctx, patientID)
}

func (s *AttachmentService) DeleteRadiograph(ctx context.Context, id string) error {
	return s.radiographs.Delete(ctx, id)
}

func (s *AttachmentService) CreateConsent(ctx context.Context, patientID, fileName, fileType string, fileBlob []byte) (*models.Consent, error) {
	if err := utils.ValidateAttachmentData(patientID, fileName, fileType, fileBlob); err != nil {
		return nil, err
	}
	consent := models.Consent{
		ID:        uuid.New().String(),
		PatientID: patientID,
		FileName:  fileName,
		FileType:  fileType,
		FileBlob:  fileBlob,
		Date:      time.Now().Format("2006-01-02"),
	}
	if err := s.consents.Create(ctx, &consent); err != nil {
		return nil, err
	}
	return &consent, nil
}

func (s *AttachmentService) GetConsent(ctx context.Context, id string) (*models.Consent, error) {
	return s.consents.GetByID(ctx, id)
}

func (s *AttachmentService) ConsentsByPatient(ctx context.Context, patientID string) ([]models.Consent, error) {
	return s.consents.GetByPatient(ctx, patientID)
}

func (s *AttachmentService) DeleteConsent(ctx context.Context, id string) error {
	return s.consents.Delete(ctx, id)
}
