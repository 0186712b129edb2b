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

// OrderHandler handles checkout purchases and the order lifecycle.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateCheckout godoc
// @Summary      Buy a catalog offer through checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CheckoutOrderRequest  true  "Offer"
// @Success      201   {object}  response.Envelope
// @Router       /orders/checkout [post]
func (h *OrderHandler) CreateCheckout(c *gin.Context) {
	var payload request.CheckoutOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.CreateCheckoutOrder(c.Request.Context(), middleware.PrincipalFrom(c), payload.OfferID)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	log.Printf("[order][handler] checkout created order_id=%s checkout_id=%s", res.Order.ID, res.CheckoutID)

	c.JSON(http.StatusCreated, response.OK("Checkout created", response.FromCheckout(res)))
}

// CaptureCheckout godoc
// @Summary      Capture an approved checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                       true  "Order id"
// @Param        body  body      request.CaptureOrderRequest  true  "Checkout"
// @Success      200   {object}  response.Envelope
// @Router       /orders/{id}/capture [post]
func (h *OrderHandler) CaptureCheckout(c *gin.Context) {
	var payload request.CaptureOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.CaptureCheckoutOrder(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.CheckoutID)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Payment captured", response.FromOrder(order)))
}

// ListOrders godoc
// @Summary      List orders (all for admins, own for clients)
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.Envelope
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.ListOrders(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromOrders(orders)))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetOrder(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromOrder(order)))
}

// UpdateStatus godoc
// @Summary      Move an order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                            true  "Order id"
// @Param        body  body      request.UpdateOrderStatusRequest  true  "Status"
// @Success      200   {object}  response.Envelope
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.UpdateOrderStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Order status updated", response.FromOrder(order)))
}

// UpdateAmount godoc
// @Summary      Change the agreed amount of an unpaid order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                            true  "Order id"
// @Param        body  body      request.UpdateOrderAmountRequest  true  "Amount"
// @Success      200   {object}  response.Envelope
// @Router       /orders/{id}/amount [patch]
func (h *OrderHandler) UpdateAmount(c *gin.Context) {
	var payload request.UpdateOrderAmountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.UpdateOrderAmount(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.Amount)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Order amount updated", response.FromOrder(order)))
}

// CancelOrder godoc
// @Summary      Cancel a pending, unpaid order
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  response.Envelope
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.usecase.CancelOrder(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Order cancelled", response.FromOrder(order)))
}
