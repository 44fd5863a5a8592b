package auth

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store/memstore"
	"ethiowork-backend/internal/testutil"
	"ethiowork-backend/internal/utilities"
)

func newAuthTestRouter() (*gin.Engine, *memstore.MemStore) {
	gin.SetMode(gin.TestMode)
	SECRET_KEY = "test-secret"

	ms := memstore.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := service.New(ms, notify.NewDispatcher(ms, log), log)
	handler := NewLocalAuthHandler(ms, svc, log)

	r := gin.New()
	r.POST("/auth/register", handler.RegisterHandler)
	r.POST("/auth/login", handler.LoginHandler)
	return r, ms
}

func TestRegisterCreatesAccountWithStarterProfile(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":      "abel@ethiowork.test",
		"password":   "SeedPass123!",
		"role":       "job_seeker",
		"first_name": "Abel",
		"last_name":  "Tesfaye",
	}, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["access_token"])

	account, ok := resp["account"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "abel@ethiowork.test", account["email"])
	assert.Equal(t, model.RoleJobSeeker, account["role"])

	profile, ok := account["seeker_profile"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Abel", profile["first_name"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    "abel@ethiowork.test",
		"password": "short",
		"role":     "job_seeker",
	}, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password should be longer or equal to 8 characters", resp["error"])
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":    "abel@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "admin",
	}, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	r, _ := newAuthTestRouter()

	body := gin.H{
		"email":    "abel@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "job_seeker",
	}
	rec, _ := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", resp["error"])
}

func TestLoginReturnsToken(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":        "sheba@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Sheba Tech",
	}, "", r, "/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    "sheba@ethiowork.test",
		"password": "SeedPass123!",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["access_token"])

	account, ok := resp["account"].(map[string]interface{})
	assert.True(t, ok)
	profile, ok := account["employer_profile"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Sheba Tech", profile["company_name"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":    "abel@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "job_seeker",
	}, "", r, "/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    "abel@ethiowork.test",
		"password": "WrongPass123!",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email or password is incorrect", resp["error"])
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	r, _ := newAuthTestRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    "nobody@ethiowork.test",
		"password": "SeedPass123!",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email or password is incorrect", resp["error"])
}

func TestLoginRejectsBannedAccount(t *testing.T) {
	r, ms := newAuthTestRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":    "banned@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "job_seeker",
	}, "", r, "/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	acc, err := ms.FindAccountByEmail(context.Background(), "banned@ethiowork.test")
	assert.NoError(t, err)
	assert.NoError(t, ms.SetBanned(context.Background(), acc.ID, true))

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":    "banned@ethiowork.test",
		"password": "SeedPass123!",
	}, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account is banned", resp["error"])
}

func TestVerifyPasswordRoundtrip(t *testing.T) {
	hashed, err := utilities.HashPassword("SeedPass123!")
	assert.NoError(t, err)
	assert.True(t, utilities.VerifyPassword("SeedPass123!", hashed))
	assert.False(t, utilities.VerifyPassword("WrongPass123!", hashed))
}
