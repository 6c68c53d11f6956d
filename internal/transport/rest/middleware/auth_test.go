package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storeaudit/internal/model"
	"storeaudit/internal/service"
)

type fakeValidator map[string]*model.Claims

func (f fakeValidator) ValidateToken(token string) (*model.Claims, error) {
	if c, ok := f[token]; ok {
		return c, nil
	}
	return nil, service.ErrInvalidToken
}

func TestRequireRole(t *testing.T) {
	mw := NewAuthMiddleware(fakeValidator{
		"admin-token":   {UserID: "u1", Role: model.RoleAdmin},
		"manager-token": {UserID: "u2", Role: model.RoleManager},
	})

	var seenUser string
	h := mw.RequireRole(model.RoleAdmin, model.RoleInspector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"role not allowed", "Bearer manager-token", http.StatusForbidden},
		{"allowed", "bearer admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, "u1", seenUser)
}

func TestGetClaims_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetClaims(req.Context()))
	assert.Equal(t, "", GetUserID(req.Context()))
}
