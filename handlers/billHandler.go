package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service *services.BillingService
}

func NewBillHandler(service *services.BillingService) *BillHandler {
	return &BillHandler{service: service}
}

// CreateBillRequest is the payload for assembling a new bill. Amounts are in
// minor units (kobo).
type CreateBillRequest struct {
	PatientID    string            `json:"patient_id" binding:"required"`
	DepartmentID string            `json:"department_id" binding:"required"`
	EpisodeID    *string           `json:"episode_id"`
	PreAuthCode  string            `json:"pre_auth_code"`
	Discount     int64             `json:"discount"`
	Tax          int64             `json:"tax"`
	Items        []models.BillItem `json:"items" binding:"required"`
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), req.PatientID, req.DepartmentID,
		req.EpisodeID, req.PreAuthCode, req.Items, req.Discount, req.Tax, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, bill, 201)
}

func (h *BillHandler) GetBill(c *gin.Context) {
	bill, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if bill == nil {
		c.JSON(404, gin.H{"error": "Bill not found"})
		return
	}
	middlewares.RespondJSON(c, bill, 200)
}

func (h *BillHandler) ListBills(c *gin.Context) {
	var filter models.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	bills, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, bills, 200)
}

func (h *BillHandler) WaiveBill(c *gin.Context) {
	bill, err := h.service.Waive(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, bill, 200)
}

func (h *BillHandler) RefundBill(c *gin.Context) {
	bill, err := h.service.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, bill, 200)
}
