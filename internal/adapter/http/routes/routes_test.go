package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agency_billing/internal/adapter/http/handlers"
	"agency_billing/internal/adapter/http/handlers/mocks"
	"agency_billing/internal/adapter/http/middleware"
	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/mock/gomock"
)

const testSecret = "routes-secret"

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := middleware.Claims{
		UserID: "user-1",
		Email:  "client@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + s
}

type routeMocks struct {
	quotes   *mocks.MockIQuoteUseCase
	orders   *mocks.MockIOrderUseCase
	payments *mocks.MockIPaymentUseCase
	invoices *mocks.MockIInvoiceUseCase
	projects *mocks.MockIProjectUseCase
}

func newTestEngine(ctrl *gomock.Controller) (*gin.Engine, routeMocks) {
	m := routeMocks{
		quotes:   mocks.NewMockIQuoteUseCase(ctrl),
		orders:   mocks.NewMockIOrderUseCase(ctrl),
		payments: mocks.NewMockIPaymentUseCase(ctrl),
		invoices: mocks.NewMockIInvoiceUseCase(ctrl),
		projects: mocks.NewMockIProjectUseCase(ctrl),
	}
	h := billingHandlers{
		quotes:   handlers.NewQuoteHandler(m.quotes),
		orders:   handlers.NewOrderHandler(m.orders),
		payments: handlers.NewPaymentHandler(m.payments),
		invoices: handlers.NewInvoiceHandler(m.invoices),
		projects: handlers.NewProjectHandler(m.projects),
	}

	r := gin.New()
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, middleware.NewAuth(testSecret), func(c *gin.Context) { c.Next() }, h)
	return r, m
}

func TestRoutes_Access(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		method   string
		path     string
		role     string
		body     string
		expect   func(m routeMocks)
		expected int
	}{
		{name: "ping is public", method: http.MethodGet, path: "/v1/ping", expected: http.StatusOK},
		{
			name: "quote submission is public", method: http.MethodPost, path: "/v1/quotes",
			body: `{"name":"Ada","email":"ada@example.com","siteType":"vitrine","budget":"1k","deadline":"1 mois","description":"Un site vitrine complet"}`,
			expect: func(m routeMocks) {
				m.quotes.EXPECT().SubmitQuote(gomock.Any(), entities.Principal{}, gomock.Any()).Return(entities.Quote{ID: "q-1"}, nil)
			},
			expected: http.StatusCreated,
		},
		{name: "quote list needs a token", method: http.MethodGet, path: "/v1/quotes", expected: http.StatusUnauthorized},
		{
			name: "client lists quotes", method: http.MethodGet, path: "/v1/quotes", role: "client",
			expect: func(m routeMocks) {
				m.quotes.EXPECT().ListQuotes(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expected: http.StatusOK,
		},
		{name: "client cannot price a quote", method: http.MethodPatch, path: "/v1/quotes/q-1", role: "client", body: `{}`, expected: http.StatusForbidden},
		{name: "client cannot change order status", method: http.MethodPatch, path: "/v1/orders/o-1/status", role: "client", body: `{"status":"paid"}`, expected: http.StatusForbidden},
		{name: "client cannot issue invoices", method: http.MethodPost, path: "/v1/invoices", role: "client", body: `{}`, expected: http.StatusForbidden},
		{name: "client cannot add milestones", method: http.MethodPost, path: "/v1/projects/p-1/milestones", role: "client", body: `{"title":"x"}`, expected: http.StatusForbidden},
		{
			name: "admin changes order amount", method: http.MethodPatch, path: "/v1/orders/o-1/amount", role: "admin", body: `{"amount":900}`,
			expect: func(m routeMocks) {
				m.orders.EXPECT().UpdateOrderAmount(gomock.Any(), gomock.Any(), "o-1", gomock.Any()).Return(entities.Order{ID: "o-1"}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name: "balance intent", method: http.MethodPost, path: "/v1/orders/o-1/balance/intent", role: "client",
			expect: func(m routeMocks) {
				m.payments.EXPECT().InitBalance(gomock.Any(), gomock.Any(), "o-1").Return(usecase.PaymentIntentResult{PaymentIntentID: "pi_1"}, nil)
			},
			expected: http.StatusOK,
		},
		{
			name: "webhook skips bearer auth", method: http.MethodPost, path: "/v1/payments/webhook", body: `{}`,
			expect: func(m routeMocks) {
				m.payments.EXPECT().HandleWebhook(gomock.Any(), []byte(`{}`), "").Return(nil)
			},
			expected: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			r, m := newTestEngine(ctrl)
			if tt.expect != nil {
				tt.expect(m)
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, tt.role))
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Fatalf("expected %d, got %d: %s", tt.expected, w.Code, w.Body.String())
			}
		})
	}
}
