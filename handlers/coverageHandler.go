package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"HavenCare/services"

	"github.com/gin-gonic/gin"
)

type CoverageHandler struct {
	coverage  *services.CoverageService
	overrides *services.OverrideService
}

func NewCoverageHandler(coverage *services.CoverageService, overrides *services.OverrideService) *CoverageHandler {
	return &CoverageHandler{coverage: coverage, overrides: overrides}
}

func (h *CoverageHandler) CreateRule(c *gin.Context) {
	var rule models.ServiceCoverage
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	rule.UpdatedBy = actorFrom(c)

	if err := h.coverage.Create(c.Request.Context(), &rule); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, rule, 201)
}

// SupersedeRule replaces a rule with a new version. The old rule stays on
// disk, deactivated, so historical bills keep a valid reference.
func (h *CoverageHandler) SupersedeRule(c *gin.Context) {
	var replacement models.ServiceCoverage
	if err := c.ShouldBindJSON(&replacement); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.coverage.Supersede(c.Request.Context(), c.Param("id"), &replacement, actorFrom(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, rule, 200)
}

func (h *CoverageHandler) DeactivateRule(c *gin.Context) {
	if err := h.coverage.Deactivate(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(200)
}

func (h *CoverageHandler) GetRule(c *gin.Context) {
	rule, err := h.coverage.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if rule == nil {
		c.JSON(404, gin.H{"error": "Coverage rule not found"})
		return
	}
	middlewares.RespondJSON(c, rule, 200)
}

func (h *CoverageHandler) ListRules(c *gin.Context) {
	var filter models.CoverageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	rules, err := h.coverage.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, rules, 200)
}

func (h *CoverageHandler) GrantOverride(c *gin.Context) {
	var override models.EmergencyOverride
	if err := c.ShouldBindJSON(&override); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	override.GrantedBy = actorFrom(c)

	if err := h.overrides.Grant(c.Request.Context(), &override); err != nil {
		handleServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, override, 201)
}

func (h *CoverageHandler) ExpireOverride(c *gin.Context) {
	if err := h.overrides.Expire(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(200)
}

func (h *CoverageHandler) ActiveOverride(c *gin.Context) {
	override, err := h.overrides.ActiveForPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if override == nil {
		c.JSON(404, gin.H{"error": "No override in force"})
		return
	}
	middlewares.RespondJSON(c, override, 200)
}
