package services

import (
	"HavenCare/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The guards below all reject before any repository is touched, so a zero
// service is enough to exercise them.

func TestCreateDraft_RequiresBills(t *testing.T) {
	s := &ClaimService{}
	_, err := s.CreateDraft(context.Background(), "prov-1", "pt-1", nil, nil, "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestApprove_RejectsNegativeAmount(t *testing.T) {
	s := &ClaimService{}
	_, err := s.Approve(context.Background(), "CL-1", 1, -100, "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeny_RequiresReason(t *testing.T) {
	s := &ClaimService{}
	_, err := s.Deny(context.Background(), "CL-1", 1, "", "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestResubmit_RequiresNotes(t *testing.T) {
	s := &ClaimService{}
	_, err := s.Resubmit(context.Background(), "CL-1", 1, "", "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRetract_RequiresNotes(t *testing.T) {
	s := &ClaimService{}
	_, err := s.Retract(context.Background(), "CL-1", 1, "", "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestWithdraw_RejectsUnknownReason(t *testing.T) {
	s := &ClaimService{}
	_, err := s.Withdraw(context.Background(), "CL-1", 1, "felt_like_it", nil, nil, "officer-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}
