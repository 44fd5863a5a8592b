package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store/memstore"
	"ethiowork-backend/internal/testutil"
	"ethiowork-backend/internal/utilities"
)

// recordingMailer captures outgoing reset mails for assertions.
type recordingMailer struct {
	to       string
	resetURL string
	sent     int
}

func (m *recordingMailer) SendPasswordReset(to, resetURL string) error {
	m.to = to
	m.resetURL = resetURL
	m.sent++
	return nil
}

func newResetTestRouter() (*gin.Engine, *memstore.MemStore, *recordingMailer) {
	gin.SetMode(gin.TestMode)
	SECRET_KEY = "test-secret"

	ms := memstore.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := &recordingMailer{}
	controller := NewPasswordResetController(ms, m, log)

	r := gin.New()
	r.POST("/auth/password/forgot", controller.ForgotPasswordHandler)
	r.POST("/auth/password/reset", controller.ResetPasswordHandler)
	return r, ms, m
}

func seedIdentity(t *testing.T, ms *memstore.MemStore, email, password string) {
	t.Helper()
	hashed, err := utilities.HashPassword(password)
	assert.NoError(t, err)
	acc := model.Account{
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleJobSeeker,
	}
	assert.NoError(t, ms.CreateIdentity(context.Background(), &acc))
}

func tokenFromResetURL(t *testing.T, resetURL string) string {
	t.Helper()
	parsed, err := url.Parse(resetURL)
	assert.NoError(t, err)
	token := parsed.Query().Get("token")
	assert.NotEmpty(t, token)
	return token
}

func TestForgotPasswordSendsMailWithToken(t *testing.T) {
	r, ms, m := newResetTestRouter()
	seedIdentity(t, ms, "abel@ethiowork.test", "OldPass123!")

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "abel@ethiowork.test",
	}, "", r, "/auth/password/forgot", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "If that address is registered, a reset mail is on its way", resp["message"])
	assert.Equal(t, 1, m.sent)
	assert.Equal(t, "abel@ethiowork.test", m.to)
	assert.True(t, strings.Contains(m.resetURL, "/reset-password?token="))
}

func TestForgotPasswordUnknownEmailRespondsIdentically(t *testing.T) {
	r, _, m := newResetTestRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email": "nobody@ethiowork.test",
	}, "", r, "/auth/password/forgot", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "If that address is registered, a reset mail is on its way", resp["message"])
	assert.Equal(t, 0, m.sent, "no mail goes out for unregistered addresses")
}

func TestResetPasswordConsumesToken(t *testing.T) {
	r, ms, m := newResetTestRouter()
	seedIdentity(t, ms, "abel@ethiowork.test", "OldPass123!")

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "abel@ethiowork.test",
	}, "", r, "/auth/password/forgot", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	token := tokenFromResetURL(t, m.resetURL)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"token":    token,
		"password": "NewPass123!",
	}, "", r, "/auth/password/reset", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password updated", resp["message"])

	// The token is single use.
	rec, resp = testutil.MakeJSONRequest(gin.H{
		"token":    token,
		"password": "AnotherPass123!",
	}, "", r, "/auth/password/reset", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Reset token is expired or already used", resp["error"])
}

func TestResetPasswordRejectsBogusToken(t *testing.T) {
	r, _, _ := newResetTestRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"token":    "not-a-real-token",
		"password": "NewPass123!",
	}, "", r, "/auth/password/reset", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Reset token is invalid", resp["error"])
}

func TestSecondForgotInvalidatesFirstToken(t *testing.T) {
	r, ms, m := newResetTestRouter()
	seedIdentity(t, ms, "abel@ethiowork.test", "OldPass123!")

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email": "abel@ethiowork.test",
	}, "", r, "/auth/password/forgot", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	firstToken := tokenFromResetURL(t, m.resetURL)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"email": "abel@ethiowork.test",
	}, "", r, "/auth/password/forgot", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"token":    firstToken,
		"password": "NewPass123!",
	}, "", r, "/auth/password/reset", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Reset token is expired or already used", resp["error"])
}
