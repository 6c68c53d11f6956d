package middleware

import (
	"context"
	"net/http"
	"strings"

	"storeaudit/internal/model"
	"storeaudit/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*model.Claims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	auth TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireRole validates the bearer token and admits only the listed roles
func (m *AuthMiddleware) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearerToken(r)
			if token == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			claims, err := m.auth.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			if !hasRole(claims.Role, roles) {
				http.Error(w, `{"error":"`+service.ErrForbidden.Error()+`"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims stores claims in the context
func WithClaims(ctx context.Context, claims *model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims extracts claims from context
func GetClaims(ctx context.Context) *model.Claims {
	if v, ok := ctx.Value(claimsKey).(*model.Claims); ok {
		return v
	}
	return nil
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.UserID
	}
	return ""
}

func hasRole(role model.Role, allowed []model.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
