package services

import (
	"HavenCare/models"
	"HavenCare/repositories"
	"HavenCare/utils"
	"context"
	"fmt"
	"time"
)

// PayerContext describes who funds an encounter's line items. It is built
// once per billing request from the patient record and any active emergency
// override, then applied to every item.
type PayerContext struct {
	PayerType     string
	HMOProviderID string
	PreAuthCode   string
	HasOverride   bool
}

type CoverageService struct {
	repository *repositories.CoverageRepository
	overrides  *repositories.OverrideRepository
}

func NewCoverageService(repository *repositories.CoverageRepository, overrides *repositories.OverrideRepository) *CoverageService {
	return &CoverageService{repository: repository, overrides: overrides}
}

// ResolveItemCoverage splits one priced item between the HMO and the
// patient. The item's Total must already be computed. The resolver fails
// closed: any situation it cannot price in the insurer's favor lands on the
// patient, never silently on the HMO.
func ResolveItemCoverage(item *models.BillItem, payer PayerContext, rule *models.ServiceCoverage) {
	item.HMOCoveredAmount = 0
	item.PatientLiabilityAmount = item.Total
	item.AuthorizationPending = false
	item.HMOServiceCoverageID = nil

	if payer.PayerType != models.PayerTypeHMO || item.IsOptedOutOfHMO {
		if item.IsOptedOutOfHMO {
			item.HMOStatus = models.HMOStatusOptedOut
		} else {
			item.HMOStatus = models.HMOStatusNotCovered
		}
		return
	}

	if rule == nil {
		item.HMOStatus = models.HMOStatusNotCovered
		return
	}

	ruleID := rule.ID
	item.HMOServiceCoverageID = &ruleID

	// A rule that requires pre-authorization with none attached (and no
	// emergency override) prices the whole item to the patient and flags it
	// pending, so it can be re-resolved once authorization arrives but never
	// slips into a claim unapproved.
	if rule.RequiresPreAuth && payer.PreAuthCode == "" && !payer.HasOverride {
		item.HMOStatus = models.HMOStatusNotCovered
		item.AuthorizationPending = true
		return
	}

	covered := coveredAmount(item.Total, rule)
	item.HMOCoveredAmount = covered
	item.PatientLiabilityAmount = item.Total - covered

	switch {
	case item.PatientLiabilityAmount == 0:
		item.HMOStatus = models.HMOStatusCovered
	case covered == 0:
		item.HMOStatus = models.HMOStatusNotCovered
	default:
		item.HMOStatus = models.HMOStatusPartial
	}
}

// coveredAmount computes the insurer's share for one item under a rule.
// Integer division rounds down, so the rounding remainder always goes to
// patient liability and the insurer is never over-credited.
func coveredAmount(total int64, rule *models.ServiceCoverage) int64 {
	var covered int64
	switch rule.CoverageType {
	case models.CoverageTypeFull:
		covered = total
	case models.CoverageTypePartialPercent:
		covered = total * rule.CoveragePercentage / 100
	case models.CoverageTypePartialFlat:
		covered = rule.CoverageFlatAmount
	default:
		return 0
	}
	if covered > total {
		covered = total
	}
	if rule.MaxCoveredAmount != nil && covered > *rule.MaxCoveredAmount {
		covered = *rule.MaxCoveredAmount
	}
	if covered < 0 {
		covered = 0
	}
	return covered
}

// ResolveItems resolves every item on a bill against the payer's coverage
// table. Missing rules resolve to not_covered rather than erroring.
func (s *CoverageService) ResolveItems(ctx context.Context, payer PayerContext, items []models.BillItem) error {
	for i := range items {
		var rule *models.ServiceCoverage
		if payer.PayerType == models.PayerTypeHMO && !items[i].IsOptedOutOfHMO {
			var err error
			rule, err = s.repository.FindActive(ctx, payer.HMOProviderID, items[i].Category)
			if err != nil {
				return fmt.Errorf("failed to look up coverage for %q: %w", items[i].Category, err)
			}
		}
		ResolveItemCoverage(&items[i], payer, rule)
	}
	return nil
}

// BuildPayerContext assembles the payer context for one patient, including
// whether an emergency override is currently in force.
func (s *CoverageService) BuildPayerContext(ctx context.Context, patient *models.Patient, preAuthCode string) (PayerContext, error) {
	payer := PayerContext{
		PayerType:   patient.PayerType,
		PreAuthCode: preAuthCode,
	}
	if patient.HMOProviderID != nil {
		payer.HMOProviderID = *patient.HMOProviderID
	}

	override, err := s.overrides.ActiveForPatient(ctx, patient.ID, time.Now())
	if err != nil {
		return payer, err
	}
	payer.HasOverride = override != nil

	return payer, nil
}

func (s *CoverageService) Create(ctx context.Context, rule *models.ServiceCoverage) error {
	if err := utils.ValidateCoverageRule(rule); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	return s.repository.Create(ctx, rule)
}

func (s *CoverageService) Supersede(ctx context.Context, id string, replacement *models.ServiceCoverage, actor string) (*models.ServiceCoverage, error) {
	old, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, fmt.Errorf("coverage rule not found: %w", models.ErrCoverageNotFound)
	}
	// Provider and category are inherited; the replacement only changes terms.
	replacement.HMOProviderID = old.HMOProviderID
	replacement.ServiceCategory = old.ServiceCategory
	if err := utils.ValidateCoverageRule(replacement); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrValidation)
	}
	return s.repository.Supersede(ctx, id, replacement, actor)
}

func (s *CoverageService) Deactivate(ctx context.Context, id, actor string) error {
	return s.repository.Deactivate(ctx, id, actor)
}

func (s *CoverageService) GetByID(ctx context.Context, id string) (*models.ServiceCoverage, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *CoverageService) List(ctx context.Context, filter models.CoverageFilter) ([]models.ServiceCoverage, error) {
	return s.repository.List(ctx, filter)
}
