package handlers

import (
	"net/http"

	request "agency_billing/internal/adapter/http/dto/request"
	response "agency_billing/internal/adapter/http/dto/response"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// CreateInvoice godoc
// @Summary      Issue a manual invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CreateInvoiceRequest  true  "Invoice"
// @Success      201   {object}  response.Envelope
// @Router       /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.CreateManualInvoice(c.Request.Context(), middleware.PrincipalFrom(c), payload.ToInput())
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Invoice created", response.FromInvoice(inv)))
}

// ListInvoices godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.Envelope
// @Router       /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invs, err := h.usecase.ListInvoices(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromInvoices(invs)))
}

// GetInvoice godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  response.Envelope
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetInvoice(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromInvoice(inv)))
}

// UpdateInvoice godoc
// @Summary      Edit an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Invoice id"
// @Param        body  body      request.UpdateInvoiceRequest  true  "Changes"
// @Success      200   {object}  response.Envelope
// @Router       /invoices/{id} [patch]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var payload request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	inv, err := h.usecase.UpdateInvoice(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ToUpdate())
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Invoice updated", response.FromInvoice(inv)))
}
