package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"siopa/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, userID string, roles []string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	assert.NoError(t, err)
	return token
}

func capturingHandle(called *bool, userID *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		if id, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			*userID = id
		}
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	var called bool
	var userID string

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	OptionalAuth(capturingHandle(&called, &userID))(httptest.NewRecorder(), req, nil)

	assert.True(t, called)
	assert.Empty(t, userID)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	var called bool
	var userID string

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	OptionalAuth(capturingHandle(&called, &userID))(httptest.NewRecorder(), req, nil)

	assert.True(t, called)
	assert.Empty(t, userID)
}

func TestOptionalAuthCarriesIdentity(t *testing.T) {
	var called bool
	var userID string

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42", []string{"user"}))
	OptionalAuth(capturingHandle(&called, &userID))(httptest.NewRecorder(), req, nil)

	assert.True(t, called)
	assert.Equal(t, "u42", userID)
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	var called bool
	var userID string

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u42", []string{"user"}))
	rec := httptest.NewRecorder()
	RequireRole("admin", capturingHandle(&called, &userID))(rec, req, nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAdmitsAdmin(t *testing.T) {
	var called bool
	var userID string

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1", []string{"user", "admin"}))
	RequireRole("admin", capturingHandle(&called, &userID))(httptest.NewRecorder(), req, nil)

	assert.True(t, called)
	assert.Equal(t, "u1", userID)
}
