package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"context"
	"fmt"
	"time"
)

type OverrideService struct {
	repository *repositories.OverrideRepository
}

func NewOverrideService(repository *repositories.OverrideRepository) *OverrideService {
	return &OverrideService{repository: repository}
}

// Grant puts an emergency override in force for a patient, lifting the
// pre-authorization gate until it expires.
func (s *OverrideService) Grant(ctx context.Context, override *models.EmergencyOverride) error {
	if override.PatientID == "" || override.Reason == "" {
		return fmt.Errorf("patient and reason are required: %w", models.ErrValidation)
	}
	if !override.ExpiresAt.After(time.Now()) {
		return fmt.Errorf("override expiry must be in the future: %w", models.ErrValidation)
	}
	return s.repository.Grant(ctx, override)
}

func (s *OverrideService) Expire(ctx context.Context, id string) error {
	return s.repository.Expire(ctx, id)
}

func (s *OverrideService) ActiveForPatient(ctx context.Context, patientID string) (*models.EmergencyOverride, error) {
	return s.repository.ActiveForPatient(ctx, patientID, time.Now())
}
