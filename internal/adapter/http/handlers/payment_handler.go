package handlers

import (
	"errors"
	"log"
	"net/http"

	request "agency_billing/internal/adapter/http/dto/request"
	response "agency_billing/internal/adapter/http/dto/response"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/usecase"
	"agency_billing/internal/usecase/interfaces"
	"agency_billing/pkg"

	"github.com/gin-gonic/gin"
)

const stripeSignatureHeader = "Stripe-Signature"

// PaymentHandler handles deposit and balance intents and the provider webhook.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// InitDeposit godoc
// @Summary      Create the deposit payment intent of an order
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.Envelope
// @Router       /orders/{id}/deposit/intent [post]
func (h *PaymentHandler) InitDeposit(c *gin.Context) {
	res, err := h.usecase.InitDeposit(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Payment intent created", response.FromPaymentIntent(res)))
}

// ConfirmDeposit godoc
// @Summary      Confirm the deposit of an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Order id"
// @Param        body  body      request.PaymentIntentRequest  true  "Payment intent"
// @Success      200   {object}  response.Envelope
// @Router       /orders/{id}/deposit/confirm [post]
func (h *PaymentHandler) ConfirmDeposit(c *gin.Context) {
	var payload request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.ConfirmDeposit(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolvePaymentIntentID())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	log.Printf("[payment][handler] deposit confirmed order_id=%s", order.ID)
	c.JSON(http.StatusOK, response.OK("Deposit confirmed", response.FromOrder(order)))
}

// InitBalance godoc
// @Summary      Create the balance payment intent of an order
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.Envelope
// @Router       /orders/{id}/balance/intent [post]
func (h *PaymentHandler) InitBalance(c *gin.Context) {
	res, err := h.usecase.InitBalance(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Payment intent created", response.FromPaymentIntent(res)))
}

// ConfirmBalance godoc
// @Summary      Confirm the balance of an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Order id"
// @Param        body  body      request.PaymentIntentRequest  true  "Payment intent"
// @Success      200   {object}  response.Envelope
// @Router       /orders/{id}/balance/confirm [post]
func (h *PaymentHandler) ConfirmBalance(c *gin.Context) {
	var payload request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.ConfirmBalance(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolvePaymentIntentID())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	log.Printf("[payment][handler] balance confirmed order_id=%s", order.ID)
	c.JSON(http.StatusOK, response.OK("Balance confirmed", response.FromOrder(order)))
}

// Webhook godoc
// @Summary      Payment provider webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Provider signature"
// @Success      200               {object}  response.WebhookAck
// @Failure      400               {object}  pkg.HTTPError
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	err = h.usecase.HandleWebhook(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response.WebhookAck{Received: true})
	case errors.Is(err, interfaces.ErrInvalidWebhookSignature):
		log.Printf("[payment][handler] webhook rejected err=%v", err)
		writeError(c, pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusBadRequest))
	default:
		writeError(c, pkg.NewDomainError("WEBHOOK_FAILED", "Webhook processing failed", err, http.StatusInternalServerError))
	}
}
