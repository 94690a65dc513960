package controllers

import (
	"HavenCare/handlers"
	"HavenCare/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupBillingRoutes registers the billing, claims, coverage, and registry
// endpoints. Everything here requires a valid staff token; the admin-only
// coverage mutations additionally require the Admin role.
func SetupBillingRoutes(
	router *gin.Engine,
	billHandler *handlers.BillHandler,
	paymentHandler *handlers.PaymentHandler,
	codeHandler *handlers.BillingCodeHandler,
	claimHandler *handlers.ClaimHandler,
	coverageHandler *handlers.CoverageHandler,
	registryHandler *handlers.RegistryHandler,
) {
	authed := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		// Bills and payments
		authed.POST("/bills", billHandler.CreateBill)
		authed.GET("/bills", billHandler.ListBills)
		authed.GET("/bills/:id", billHandler.GetBill)
		authed.POST("/bills/:id/waive", billHandler.WaiveBill)
		authed.POST("/bills/:id/refund", billHandler.RefundBill)
		authed.POST("/bills/:id/payments", paymentHandler.RecordPayment)
		authed.GET("/bills/:id/payments", paymentHandler.ListBillPayments)

		// Deferred-payment codes
		authed.POST("/bills/:id/codes", codeHandler.IssueCode)
		authed.POST("/codes/redeem", codeHandler.RedeemCode)
		authed.GET("/codes/:code", codeHandler.GetCode)

		// Cashier shifts
		authed.POST("/shifts", paymentHandler.OpenShift)
		authed.GET("/shifts/:id", paymentHandler.GetShift)
		authed.GET("/shifts/:id/stats", paymentHandler.ShiftStats)
		authed.POST("/shifts/:id/close", paymentHandler.CloseShift)

		// Claims lifecycle
		authed.POST("/claims", claimHandler.CreateClaim)
		authed.GET("/claims", claimHandler.ListClaims)
		authed.GET("/claims/:id", claimHandler.GetClaim)
		authed.POST("/claims/:id/submit", claimHandler.SubmitClaim)
		authed.POST("/claims/:id/process", claimHandler.MarkProcessing)
		authed.POST("/claims/:id/approve", claimHandler.ApproveClaim)
		authed.POST("/claims/:id/deny", claimHandler.DenyClaim)
		authed.POST("/claims/:id/resubmit", claimHandler.ResubmitClaim)
		authed.POST("/claims/:id/pay", claimHandler.MarkClaimPaid)
		authed.POST("/claims/:id/withdraw", claimHandler.WithdrawClaim)
		authed.POST("/claims/:id/retract", claimHandler.RetractClaim)

		// Coverage lookups and emergency overrides
		authed.GET("/coverages", coverageHandler.ListRules)
		authed.GET("/coverages/:id", coverageHandler.GetRule)
		authed.POST("/overrides", coverageHandler.GrantOverride)
		authed.POST("/overrides/:id/expire", coverageHandler.ExpireOverride)
		authed.GET("/patients/:id/override", coverageHandler.ActiveOverride)

		// Registry
		authed.POST("/patients", registryHandler.CreatePatient)
		authed.GET("/patients/:id", registryHandler.GetPatient)
		authed.PUT("/patients/:id", registryHandler.UpdatePatient)
		authed.POST("/patients/:id/enrollments", registryHandler.EnrollPatient)
		authed.POST("/providers", registryHandler.CreateProvider)
		authed.GET("/providers", registryHandler.ListProviders)
		authed.GET("/providers/:id", registryHandler.GetProvider)
		authed.PUT("/providers/:id", registryHandler.UpdateProvider)
		authed.POST("/departments", registryHandler.CreateDepartment)
		authed.GET("/departments", registryHandler.ListDepartments)
	}

	// Coverage mutations change how every future bill prices, so they sit
	// behind the Admin role.
	adminGroup := router.Group("/coverages").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin"),
	)
	{
		adminGroup.POST("", coverageHandler.CreateRule)
		adminGroup.POST("/:id/supersede", coverageHandler.SupersedeRule)
		adminGroup.POST("/:id/deactivate", coverageHandler.DeactivateRule)
	}
}
