package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agency_billing/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func validClaims(role string) Claims {
	return Claims{
		UserID: "u-1",
		Email:  "alice@x.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuth_Parse(t *testing.T) {
	a := NewAuth(testSecret)

	t.Run("valid client token", func(t *testing.T) {
		tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("client"))
		p, err := a.Parse("Bearer " + tok)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.UserID != "u-1" || p.Email != "alice@x.com" || p.IsAdmin() {
			t.Fatalf("unexpected principal: %+v", p)
		}
	})

	t.Run("admin role", func(t *testing.T) {
		tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("ADMIN"))
		p, err := a.Parse("Bearer " + tok)
		if err != nil || !p.IsAdmin() {
			t.Fatalf("expected admin, got %+v (%v)", p, err)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if _, err := a.Parse(""); err != ErrMissingToken {
			t.Fatalf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims("client"))
		if _, err := a.Parse("Bearer " + tok); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		c := validClaims("client")
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		if _, err := a.Parse("Bearer " + tok); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		c := validClaims("client")
		c.UserID = ""
		tok := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		if _, err := a.Parse("Bearer " + tok); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func newAuthRouter(a *Auth) *gin.Engine {
	r := gin.New()
	echo := func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	}
	r.GET("/optional", a.OptionalAuth(), echo)
	r.GET("/private", a.RequireAuth(), echo)
	r.GET("/admin", a.RequireAuth(), RequireAdmin(), echo)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewAuth(testSecret)
	r := newAuthRouter(a)
	clientTok := "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("client"))
	adminTok := "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("admin"))

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"optional anonymous", "/optional", "", http.StatusOK},
		{"optional garbage token", "/optional", "Bearer nope", http.StatusOK},
		{"private anonymous", "/private", "", http.StatusUnauthorized},
		{"private client", "/private", clientTok, http.StatusOK},
		{"admin as client", "/admin", clientTok, http.StatusForbidden},
		{"admin as admin", "/admin", adminTok, http.StatusOK},
		{"admin anonymous", "/admin", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin_WithPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", WithPrincipal(entities.Principal{UserID: "a", Role: entities.RoleAdmin}), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/quotes", RateLimit("2-M"), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/quotes", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes: %v", codes)
	}
}

func TestRateLimit_InvalidRateFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimit("garbage"), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
