package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

type BillingCodeHandler struct {
	service *services.BillingCodeService
}

func NewBillingCodeHandler(service *services.BillingCodeService) *BillingCodeHandler {
	return &BillingCodeHandler{service: service}
}

// IssueCode creates a deferred-payment code for the bill in the path and
// emails it to the patient when possible.
func (h *BillingCodeHandler) IssueCode(c *gin.Context) {
	code, err := h.service.Issue(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, code, 201)
}

// GetCode returns a code's audit row, including whether it has been spent.
func (h *BillingCodeHandler) GetCode(c *gin.Context) {
	code, err := h.service.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if code == nil {
		c.JSON(404, gin.H{"error": "Billing code not found"})
		return
	}
	middlewares.RespondJSON(c, code, 200)
}

// RedeemCode spends a code at a cashier terminal. Invalid, expired, and
// already-used codes all come back 422 without saying which.
func (h *BillingCodeHandler) RedeemCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	code, err := h.service.Redeem(c.Request.Context(), req.Code, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, code, 200)
}
