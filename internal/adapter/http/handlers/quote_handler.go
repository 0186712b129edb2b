package handlers

import (
	"log"
	"net/http"

	request "agency_billing/internal/adapter/http/dto/request"
	response "agency_billing/internal/adapter/http/dto/response"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quote requests, admin pricing and quote acceptance.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// SubmitQuote godoc
// @Summary      Submit a quote request
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      request.SubmitQuoteRequest  true  "Quote request"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var payload request.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.SubmitQuote(c.Request.Context(), middleware.PrincipalFrom(c), payload.ToSubmission())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	log.Printf("[quote][handler] submitted quote_id=%s number=%s", q.ID, q.QuoteNumber)

	c.JSON(http.StatusCreated, response.OK("Quote request received", response.FromQuote(q)))
}

// ListQuotes godoc
// @Summary      List quotes (all for admins, own for clients)
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.Envelope
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.usecase.ListQuotes(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromQuotes(quotes)))
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetQuote(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromQuote(q)))
}

// AdminUpdateQuote godoc
// @Summary      Price, send or annotate a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                           true  "Quote id"
// @Param        body  body      request.AdminUpdateQuoteRequest  true  "Changes"
// @Success      200   {object}  response.Envelope
// @Router       /quotes/{id} [patch]
func (h *QuoteHandler) AdminUpdateQuote(c *gin.Context) {
	var payload request.AdminUpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	q, err := h.usecase.AdminUpdateQuote(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ToUpdate())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Quote updated", response.FromQuote(q)))
}

// LinkQuotes godoc
// @Summary      Attach anonymous quotes sent from the caller's e-mail
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.Envelope
// @Router       /quotes/link [post]
func (h *QuoteHandler) LinkQuotes(c *gin.Context) {
	quotes, err := h.usecase.LinkQuotesToUser(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Quotes linked", response.FromQuotes(quotes)))
}

// InitDepositPayment godoc
// @Summary      Create the deposit payment intent of a sent quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.Envelope
// @Failure      502  {object}  pkg.HTTPError
// @Router       /quotes/{id}/payment-intent [post]
func (h *QuoteHandler) InitDepositPayment(c *gin.Context) {
	res, err := h.usecase.InitQuoteDepositPayment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Payment intent created", response.FromPaymentIntent(res)))
}

// AcceptQuote godoc
// @Summary      Accept a quote after its deposit succeeded and create the order
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Quote id"
// @Param        body  body      request.PaymentIntentRequest  true  "Deposit payment intent"
// @Success      201   {object}  response.Envelope
// @Router       /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	var payload request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	quoteID := c.Param("id")
	log.Printf("[quote][handler] accept start quote_id=%s", quoteID)
	order, err := h.usecase.AcceptQuoteAndCreateOrder(c.Request.Context(), middleware.PrincipalFrom(c), quoteID, payload.ResolvePaymentIntentID())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	log.Printf("[quote][handler] accept success quote_id=%s order_id=%s", quoteID, order.ID)

	c.JSON(http.StatusCreated, response.OK("Quote accepted", response.FromOrder(order)))
}
