package handlers

import (
	"net/http"
	"testing"

	"agency_billing/internal/adapter/http/handlers/mocks"
	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestOrderHandler_CreateCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing offer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewOrderHandler(mocks.NewMockIOrderUseCase(ctrl))
		r := newTestRouter(testClient, http.MethodPost, "/v1/orders/checkout", h.CreateCheckout)

		w := doJSON(r, http.MethodPost, "/v1/orders/checkout", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("offer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newTestRouter(testClient, http.MethodPost, "/v1/orders/checkout", h.CreateCheckout)

		uc.EXPECT().CreateCheckoutOrder(gomock.Any(), testClient, "offer-1").Return(usecase.CheckoutResult{}, usecase.ErrOfferNotFound)

		w := doJSON(r, http.MethodPost, "/v1/orders/checkout", `{"offerId":"offer-1"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newTestRouter(testClient, http.MethodPost, "/v1/orders/checkout", h.CreateCheckout)

		uc.EXPECT().CreateCheckoutOrder(gomock.Any(), testClient, "offer-1").Return(usecase.CheckoutResult{
			Order:       entities.Order{ID: "o-1", Status: entities.OrderStatusPending},
			CheckoutID:  "chk-1",
			ApprovalURL: "https://pay.example.com/approve",
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/orders/checkout", `{"offerId":"offer-1"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		data, _ := decodeBody(t, w)["data"].(map[string]any)
		if data["checkoutId"] != "chk-1" || data["approvalUrl"] != "https://pay.example.com/approve" {
			t.Fatalf("unexpected data %v", data)
		}
	})
}

func TestOrderHandler_CaptureCheckout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newTestRouter(testClient, http.MethodPost, "/v1/orders/:id/capture", h.CaptureCheckout)

	uc.EXPECT().CaptureCheckoutOrder(gomock.Any(), testClient, "o-1", "chk-1").Return(entities.Order{}, usecase.ErrInsufficientPayment)

	w := doJSON(r, http.MethodPost, "/v1/orders/o-1/capture", `{"checkoutId":"chk-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["code"]; got != "INSUFFICIENT_PAYMENT" {
		t.Fatalf("unexpected code %v", got)
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid transition", err: usecase.ErrInvalidStatusTransition, expected: http.StatusBadRequest},
		{name: "forbidden", err: usecase.ErrForbidden, expected: http.StatusForbidden},
		{name: "not found", err: usecase.ErrOrderNotFound, expected: http.StatusNotFound},
		{name: "success", expected: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderUseCase(ctrl)
			h := NewOrderHandler(uc)
			r := newTestRouter(testAdmin, http.MethodPatch, "/v1/orders/:id/status", h.UpdateStatus)

			uc.EXPECT().UpdateOrderStatus(gomock.Any(), testAdmin, "o-1", entities.OrderStatusProcessing).
				Return(entities.Order{ID: "o-1", Status: entities.OrderStatusProcessing}, tt.err)

			w := doJSON(r, http.MethodPatch, "/v1/orders/o-1/status", `{"status":"PROCESSING"}`)
			if w.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestOrderHandler_UpdateAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newTestRouter(testAdmin, http.MethodPatch, "/v1/orders/:id/amount", h.UpdateAmount)

	uc.EXPECT().UpdateOrderAmount(gomock.Any(), testAdmin, "o-1", gomock.Any()).
		DoAndReturn(func(_ any, _ entities.Principal, _ string, amount decimal.Decimal) (entities.Order, error) {
			if !amount.Equal(decimal.RequireFromString("1250.50")) {
				t.Fatalf("unexpected amount %s", amount)
			}
			return entities.Order{}, usecase.ErrOrderAmountLocked
		})

	w := doJSON(r, http.MethodPatch, "/v1/orders/o-1/amount", `{"amount":"1250.50"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeBody(t, w)["code"]; got != "ORDER_AMOUNT_LOCKED" {
		t.Fatalf("unexpected code %v", got)
	}
}

func TestOrderHandler_CancelGetList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)

	r := newTestRouter(testClient, http.MethodPost, "/v1/orders/:id/cancel", h.CancelOrder)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.GET("/v1/orders", h.ListOrders)

	uc.EXPECT().CancelOrder(gomock.Any(), testClient, "o-1").Return(entities.Order{}, usecase.ErrOrderNotCancellable)
	uc.EXPECT().GetOrder(gomock.Any(), testClient, "o-2").Return(entities.Order{ID: "o-2", OrderNumber: "CMD-2026-00002", Amount: decimal.NewFromInt(1000)}, nil)
	uc.EXPECT().ListOrders(gomock.Any(), testClient).Return(nil, nil)

	if w := doJSON(r, http.MethodPost, "/v1/orders/o-1/cancel", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("cancel: expected 400, got %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/v1/orders/o-2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	data, _ := decodeBody(t, w)["data"].(map[string]any)
	if data["orderNumber"] != "CMD-2026-00002" || data["amount"] != 1000.0 {
		t.Fatalf("unexpected order %v", data)
	}

	if w := doJSON(r, http.MethodGet, "/v1/orders", ""); w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
}
