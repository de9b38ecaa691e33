package casbinAuthorization

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

func TestPolicy(t *testing.T) {
	e, err := NewEnforcer("../rbac_model.conf", "../policy.csv")
	require.NoError(t, err)

	tests := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{"Unauthenticated", "/api/v1/users/auth/login", "POST", true},
		{"Unauthenticated", "/api/v1/users/auth/register", "POST", true},
		{"Unauthenticated", "/api/v1/properties", "GET", true},
		{"Unauthenticated", "/api/v1/properties/65f0c0ffee", "GET", true},
		{"Unauthenticated", "/api/v1/users/auth/logout", "POST", false},
		{"Unauthenticated", "/api/v1/users/profile", "PUT", false},
		{"Unauthenticated", "/api/v1/users", "GET", false},
		{"guest", "/api/v1/users/auth/logout", "POST", true},
		{"guest", "/api/v1/users/profile", "PUT", true},
		{"guest", "/api/v1/users/email/a@x.com", "GET", true},
		{"host", "/api/v1/users/65f0c0ffee", "GET", true},
		{"host", "/api/v1/users/auth/login", "POST", true},
		{"guest", "/api/v1/users", "GET", false},
		{"host", "/api/v1/users", "GET", false},
		{"admin", "/api/v1/users", "GET", true},
		{"admin", "/api/v1/properties", "GET", true},
		{"admin", "/api/v1/users", "DELETE", false},
	}

	for _, tt := range tests {
		got, err := e.EnforceSafe(tt.role, tt.path, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.role, tt.method, tt.path)
	}
}

func TestCasbinMiddleware(t *testing.T) {
	e, err := NewEnforcer("../rbac_model.conf", "../policy.csv")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var rejected error
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		rejected = err
		w.WriteHeader(errors.From(err).StatusCode())
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := CasbinMiddleware(e, logger, onError)(next)

	serve := func(role domain.Role) int {
		rejected = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		if role != "" {
			identity := &authorization.Identity{User: &domain.User{Role: role}}
			req = req.WithContext(authorization.WithIdentity(req.Context(), identity))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(""))
	assert.True(t, errors.Is(rejected, errors.KindAuthentication))

	assert.Equal(t, http.StatusForbidden, serve(domain.Guest))
	assert.True(t, errors.Is(rejected, errors.KindAuthorization))

	assert.Equal(t, http.StatusNoContent, serve(domain.Admin))
	assert.Nil(t, rejected)
}
