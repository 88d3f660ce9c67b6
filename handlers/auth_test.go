package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safelife/models"
	"safelife/services/user"
)

// stubUserService answers only the password-reset path; a known email yields
// a token, everything else behaves like a miss.
type stubUserService struct {
	knownEmail string
	resetToken string
}

func (s *stubUserService) Register(context.Context, user.SignupRequest) (*user.AuthResponse, error) {
	return nil, nil
}
func (s *stubUserService) Authenticate(context.Context, string, string) (*user.AuthResponse, error) {
	return nil, nil
}
func (s *stubUserService) SignOut(context.Context, string) error       { return nil }
func (s *stubUserService) DeleteAccount(context.Context, string) error { return nil }
func (s *stubUserService) RequestPasswordReset(_ context.Context, email string) (string, error) {
	if email == s.knownEmail {
		return s.resetToken, nil
	}
	return "", nil
}
func (s *stubUserService) ConfirmPasswordReset(context.Context, string, string) error { return nil }
func (s *stubUserService) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserService) GetUserType(context.Context, string) string       { return "" }
func (s *stubUserService) GetConsent(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserService) AcceptConsent(context.Context, string) error      { return nil }

func resetRequest(t *testing.T, router *gin.Engine, email string) *httptest.ResponseRecorder {
	t.Helper()
	body := []byte(`{"email":"` + email + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset/request", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// The reset response must not reveal whether the account exists, and must
// never carry the token itself.
func TestRequestPasswordResetDoesNotLeakToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&stubUserService{
		knownEmail: "ana@example.com",
		resetToken: "super-secret-token",
	})
	router := gin.New()
	router.POST("/api/auth/reset/request", handler.RequestPasswordResetHandler)

	known := resetRequest(t, router, "ana@example.com")
	unknown := resetRequest(t, router, "nobody@example.com")

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)

	assert.NotContains(t, known.Body.String(), "super-secret-token")
	assert.NotContains(t, known.Body.String(), "resetToken")
	assert.Equal(t, unknown.Body.String(), known.Body.String())
}
