package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RecordPayment applies one payment split to a bill. The response carries the
// bill's updated position so the terminal can show the new balance at once.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	payment.BillID = c.Param("id")
	if payment.CashierID == "" {
		payment.CashierID = actorFrom(c)
	}

	bill, err := h.service.RecordPayment(c.Request.Context(), &payment)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"payment": payment, "bill": bill}, 201)
}

func (h *PaymentHandler) ListBillPayments(c *gin.Context) {
	payments, err := h.service.ListByBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, payments, 200)
}

func (h *PaymentHandler) OpenShift(c *gin.Context) {
	var shift models.CashierShift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if shift.CashierID == "" {
		shift.CashierID = actorFrom(c)
	}

	if err := h.service.OpenShift(c.Request.Context(), &shift); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, shift, 201)
}

// CloseShift reconciles and closes a shift. An optional counted_cash field
// records the physical drawer count; the variance is computed against the
// cash payments recorded during the shift.
func (h *PaymentHandler) CloseShift(c *gin.Context) {
	var req struct {
		CountedCash *int64 `json:"counted_cash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	shift, stats, err := h.service.CloseShift(c.Request.Context(), c.Param("id"), req.CountedCash)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"shift": shift, "stats": stats}, 200)
}

func (h *PaymentHandler) ShiftStats(c *gin.Context) {
	stats, err := h.service.ShiftStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, stats, 200)
}

func (h *PaymentHandler) GetShift(c *gin.Context) {
	shift, err := h.service.GetShift(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if shift == nil {
		c.JSON(404, gin.H{"error": "Shift not found"})
		return
	}
	middlewares.RespondJSON(c, shift, 200)
}
