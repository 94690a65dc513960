package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	service *services.ClaimService
}

func NewClaimHandler(service *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

type CreateClaimRequest struct {
	HMOProviderID string                    `json:"hmo_provider_id" binding:"required"`
	PatientID     string                    `json:"patient_id" binding:"required"`
	BillIDs       []string                  `json:"bill_ids" binding:"required"`
	Items         []services.ClaimItemInput `json:"items"`
}

// transitionRequest is the shared body of every lifecycle endpoint. Callers
// must echo the version they last read; a stale version is rejected with 409.
type transitionRequest struct {
	ExpectedVersion  int     `json:"expected_version" binding:"required"`
	ApprovedAmount   *int64  `json:"approved_amount"`
	Reason           string  `json:"reason"`
	Notes            string  `json:"notes"`
	PrivateBillID    *string `json:"private_bill_id"`
	PrivatePaymentID *string `json:"private_payment_id"`
}

func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.service.CreateDraft(c.Request.Context(), req.HMOProviderID, req.PatientID,
		req.BillIDs, req.Items, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 201)
}

func (h *ClaimHandler) GetClaim(c *gin.Context) {
	claim, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if claim == nil {
		c.JSON(404, gin.H{"error": "Claim not found"})
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) ListClaims(c *gin.Context) {
	var filter models.ClaimFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	claims, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claims, 200)
}

func (h *ClaimHandler) bindTransition(c *gin.Context) (*transitionRequest, bool) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil, false
	}
	return &req, true
}

func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.Submit(c.Request.Context(), c.Param("id"), req.ExpectedVersion, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) MarkProcessing(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.MarkProcessing(c.Request.Context(), c.Param("id"), req.ExpectedVersion, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	if req.ApprovedAmount == nil {
		c.JSON(400, gin.H{"error": "approved_amount is required"})
		return
	}
	claim, err := h.service.Approve(c.Request.Context(), c.Param("id"), req.ExpectedVersion,
		*req.ApprovedAmount, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) DenyClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.Deny(c.Request.Context(), c.Param("id"), req.ExpectedVersion,
		req.Reason, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) ResubmitClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.Resubmit(c.Request.Context(), c.Param("id"), req.ExpectedVersion,
		req.Notes, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) MarkClaimPaid(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.MarkPaid(c.Request.Context(), c.Param("id"), req.ExpectedVersion, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) WithdrawClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.Withdraw(c.Request.Context(), c.Param("id"), req.ExpectedVersion,
		req.Reason, req.PrivateBillID, req.PrivatePaymentID, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}

func (h *ClaimHandler) RetractClaim(c *gin.Context) {
	req, ok := h.bindTransition(c)
	if !ok {
		return
	}
	claim, err := h.service.Retract(c.Request.Context(), c.Param("id"), req.ExpectedVersion,
		req.Notes, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, claim, 200)
}
