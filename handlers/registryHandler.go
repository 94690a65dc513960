package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

// RegistryHandler exposes the patient, enrollment, provider, and department
// records the billing engine depends on.
type RegistryHandler struct {
	service *services.RegistryService
}

func NewRegistryHandler(service *services.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

func (h *RegistryHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreatePatient(c.Request.Context(), &patient); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, 201)
}

func (h *RegistryHandler) GetPatient(c *gin.Context) {
	patient, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if patient == nil {
		c.JSON(404, gin.H{"error": "Patient not found"})
		return
	}
	middlewares.RespondJSON(c, patient, 200)
}

func (h *RegistryHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	patient.ID = c.Param("id")
	if err := h.service.UpdatePatient(c.Request.Context(), &patient); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, patient, 200)
}

func (h *RegistryHandler) EnrollPatient(c *gin.Context) {
	var enrollment models.HMOEnrollment
	if err := c.ShouldBindJSON(&enrollment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	enrollment.PatientID = c.Param("id")
	if err := h.service.Enroll(c.Request.Context(), &enrollment); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, enrollment, 201)
}

func (h *RegistryHandler) CreateProvider(c *gin.Context) {
	var provider models.HMOProvider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateProvider(c.Request.Context(), &provider); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, provider, 201)
}

func (h *RegistryHandler) GetProvider(c *gin.Context) {
	provider, err := h.service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if provider == nil {
		c.JSON(404, gin.H{"error": "Provider not found"})
		return
	}
	middlewares.RespondJSON(c, provider, 200)
}

func (h *RegistryHandler) UpdateProvider(c *gin.Context) {
	var provider models.HMOProvider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	provider.ID = c.Param("id")
	if err := h.service.UpdateProvider(c.Request.Context(), &provider); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, provider, 200)
}

func (h *RegistryHandler) ListProviders(c *gin.Context) {
	providers, err := h.service.ListProviders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, providers, 200)
}

func (h *RegistryHandler) CreateDepartment(c *gin.Context) {
	var department models.Department
	if err := c.ShouldBindJSON(&department); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateDepartment(c.Request.Context(), &department); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, department, 201)
}

func (h *RegistryHandler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, departments, 200)
}
