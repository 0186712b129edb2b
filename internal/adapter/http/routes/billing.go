package routes

import (
	"net/http"

	"agency_billing/internal/adapter/http/handlers"
	"agency_billing/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathPing     = "/ping"
	PathQuotes   = "/quotes"
	PathOrders   = "/orders"
	PathInvoices = "/invoices"
	PathProjects = "/projects"
	PathPayments = "/payments"
)

type billingHandlers struct {
	quotes   *handlers.QuoteHandler
	orders   *handlers.OrderHandler
	payments *handlers.PaymentHandler
	invoices *handlers.InvoiceHandler
	projects *handlers.ProjectHandler
}

func addBillingRoutes(rg *gin.RouterGroup, auth *middleware.Auth, submitLimit gin.HandlerFunc, h billingHandlers) {
	addWebhookRoutes(rg, h)
	addQuoteRoutes(rg, auth, submitLimit, h)
	addOrderRoutes(rg, auth, h)
	addInvoiceRoutes(rg, auth, h)
	addProjectRoutes(rg, auth, h)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addQuoteRoutes(rg *gin.RouterGroup, auth *middleware.Auth, submitLimit gin.HandlerFunc, h billingHandlers) {
	quotes := rg.Group(PathQuotes)
	{
		// Anonymous visitors may request a quote; a signed-in caller gets it linked.
		quotes.POST("", submitLimit, auth.OptionalAuth(), h.quotes.SubmitQuote)

		authed := quotes.Group("", auth.RequireAuth())
		authed.GET("", h.quotes.ListQuotes)
		authed.POST("/link", h.quotes.LinkQuotes)
		authed.GET("/:id", h.quotes.GetQuote)
		authed.POST("/:id/payment-intent", h.quotes.InitDepositPayment)
		authed.POST("/:id/accept", h.quotes.AcceptQuote)
		authed.PATCH("/:id", middleware.RequireAdmin(), h.quotes.AdminUpdateQuote)
	}
}

func addOrderRoutes(rg *gin.RouterGroup, auth *middleware.Auth, h billingHandlers) {
	orders := rg.Group(PathOrders, auth.RequireAuth())
	{
		orders.GET("", h.orders.ListOrders)
		orders.POST("/checkout", h.orders.CreateCheckout)
		orders.GET("/:id", h.orders.GetOrder)
		orders.POST("/:id/capture", h.orders.CaptureCheckout)
		orders.POST("/:id/cancel", h.orders.CancelOrder)
		orders.PATCH("/:id/status", middleware.RequireAdmin(), h.orders.UpdateStatus)
		orders.PATCH("/:id/amount", middleware.RequireAdmin(), h.orders.UpdateAmount)

		orders.POST("/:id/deposit/intent", h.payments.InitDeposit)
		orders.POST("/:id/deposit/confirm", h.payments.ConfirmDeposit)
		orders.POST("/:id/balance/intent", h.payments.InitBalance)
		orders.POST("/:id/balance/confirm", h.payments.ConfirmBalance)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, auth *middleware.Auth, h billingHandlers) {
	invoices := rg.Group(PathInvoices, auth.RequireAuth())
	{
		invoices.GET("", h.invoices.ListInvoices)
		invoices.GET("/:id", h.invoices.GetInvoice)
		invoices.POST("", middleware.RequireAdmin(), h.invoices.CreateInvoice)
		invoices.PATCH("/:id", middleware.RequireAdmin(), h.invoices.UpdateInvoice)
	}
}

func addProjectRoutes(rg *gin.RouterGroup, auth *middleware.Auth, h billingHandlers) {
	projects := rg.Group(PathProjects, auth.RequireAuth())
	{
		projects.GET("", h.projects.ListProjects)
		projects.GET("/:id", h.projects.GetProject)
		projects.PATCH("/:id", middleware.RequireAdmin(), h.projects.UpdateProject)
		projects.POST("/:id/comments", h.projects.AddComment)
		projects.POST("/:id/milestones", middleware.RequireAdmin(), h.projects.AddMilestone)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h billingHandlers) {
	payments := rg.Group(PathPayments)
	{
		// Authenticated by the provider signature, not by a bearer token.
		payments.POST("/webhook", h.payments.Webhook)
	}
}
