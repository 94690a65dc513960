package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"context"
	"fmt"
)

// RegistryService is the thin surface over the registry entities the engine
// depends on: patients, enrollments, providers, and departments. The real
// registration module owns their full lifecycle.
type RegistryService struct {
	patients    *repositories.PatientRepository
	providers   *repositories.HMOProviderRepository
	departments *repositories.DepartmentRepository
}

func NewRegistryService(patients *repositories.PatientRepository, providers *repositories.HMOProviderRepository, departments *repositories.DepartmentRepository) *RegistryService {
	return &RegistryService{patients: patients, providers: providers, departments: departments}
}

func (s *RegistryService) CreatePatient(ctx context.Context, patient *models.Patient) error {
	if patient.PayerType == "" {
		patient.PayerType = models.PayerTypeCash
	}
	if patient.PayerType == models.PayerTypeHMO && patient.HMOProviderID == nil {
		return fmt.Errorf("hmo patients need a provider: %w", models.ErrValidation)
	}
	return s.patients.Create(ctx, patient)
}

func (s *RegistryService) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *RegistryService) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return s.patients.Update(ctx, patient)
}

func (s *RegistryService) Enroll(ctx context.Context, enrollment *models.HMOEnrollment) error {
	if enrollment.PatientID == "" || enrollment.HMOProviderID == "" || enrollment.MemberNumber == "" {
		return fmt.Errorf("patient, provider, and member number are required: %w", models.ErrValidation)
	}
	return s.patients.CreateEnrollment(ctx, enrollment)
}

func (s *RegistryService) CreateProvider(ctx context.Context, provider *models.HMOProvider) error {
	if provider.Name == "" {
		return fmt.Errorf("provider name is required: %w", models.ErrValidation)
	}
	return s.providers.Create(ctx, provider)
}

func (s *RegistryService) GetProvider(ctx context.Context, id string) (*models.HMOProvider, error) {
	return s.providers.GetByID(ctx, id)
}

func (s *RegistryService) ListProviders(ctx context.Context) ([]models.HMOProvider, error) {
	return s.providers.GetAll(ctx)
}

func (s *RegistryService) UpdateProvider(ctx context.Context, provider *models.HMOProvider) error {
	if provider.Name == "" {
		return fmt.Errorf("provider name is required: %w", models.ErrValidation)
	}
	return s.providers.Update(ctx, provider)
}

func (s *RegistryService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if department.Name == "" {
		return fmt.Errorf("department name is required: %w", models.ErrValidation)
	}
	return s.departments.Create(ctx, department)
}

func (s *RegistryService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.departments.GetAll(ctx)
}
