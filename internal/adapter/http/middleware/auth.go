package middleware

import (
	"errors"
	"net/http"
	"strings"

	"agency_billing/internal/domain/entities"
	"agency_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const principalKey = "principal"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")

	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	errForbidden       = pkg.NewDomainErrorSimple("FORBIDDEN", "Admin access required", http.StatusForbidden)
)

// Claims are issued by the identity service.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies HS256 bearer tokens and stores the caller in the gin context.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

func (a *Auth) Parse(header string) (entities.Principal, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return entities.Principal{}, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil {
		return entities.Principal{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return entities.Principal{}, ErrInvalidToken
	}

	role := entities.RoleClient
	if strings.EqualFold(claims.Role, string(entities.RoleAdmin)) {
		role = entities.RoleAdmin
	}
	return entities.Principal{UserID: claims.UserID, Email: claims.Email, Role: role}, nil
}

// RequireAuth rejects requests without a valid token.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := a.Parse(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets anonymous
// requests through otherwise.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, err := a.Parse(c.GetHeader("Authorization")); err == nil {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if p.UserID == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the zero Principal for anonymous requests.
func PrincipalFrom(c *gin.Context) entities.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(entities.Principal); ok {
			return p
		}
	}
	return entities.Principal{}
}

// WithPrincipal is used by tests and internal callers to impersonate a caller.
func WithPrincipal(p entities.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}
