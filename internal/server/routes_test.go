package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/auth"
	"ethiowork-backend/internal/blob"
	"ethiowork-backend/internal/mailer"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store/memstore"
	"ethiowork-backend/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.SECRET_KEY = "test-secret"
	// Keep the per-caller limit out of the way for request-heavy tests.
	os.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "1000")
	os.Setenv("ALLOW_ORIGIN", "http://localhost:3000")

	os.Exit(m.Run())
}

func newTestServer() (*gin.Engine, *memstore.MemStore) {
	ms := memstore.New()
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := service.New(ms, notify.NewDispatcher(ms, log), log)
	srv := &MyServer{
		Service:    svc,
		Identity:   ms,
		Storage:    blob.NewMemoryStorage(0),
		Revocation: auth.NewInMemoryRevocationStore(),
		Mailer:     &mailer.LogMailer{Log: log},
		Log:        log,
	}
	return srv.RegisterRoutes().(*gin.Engine), ms
}

func registerAccount(t *testing.T, r *gin.Engine, body gin.H) string {
	t.Helper()
	rec, resp := testutil.MakeJSONRequest(body, "", r, "/api/v1/auth/register", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	token, _ := resp["access_token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestHealthEndpointMemoryBackend(t *testing.T) {
	r, _ := newTestServer()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend":"memory"`)
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	r, _ := newTestServer()

	rec, _ := testutil.MakeJSONRequest(gin.H{}, "", r, "/api/v1/accounts/me", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyFlowEndToEnd(t *testing.T) {
	r, _ := newTestServer()

	employerToken := registerAccount(t, r, gin.H{
		"email":        "employer@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Sheba Tech",
	})
	seekerToken := registerAccount(t, r, gin.H{
		"email":      "seeker@ethiowork.test",
		"password":   "SeedPass123!",
		"role":       "job_seeker",
		"first_name": "Abel",
	})

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":        "Senior Go Developer",
		"company_name": "Sheba Tech",
		"location":     "Addis Ababa",
	}, employerToken, r, "/api/v1/jobposting", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	postingID := int(resp["id"].(float64))

	// Seekers cannot post jobs.
	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title": "Not allowed",
	}, seekerToken, r, "/api/v1/jobposting", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"cover_letter": "Selam, I would love to join.",
	}, seekerToken, r, fmt.Sprintf("/api/v1/jobposting/%d/apply", postingID), http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Applying twice to the same posting is a conflict.
	rec, _ = testutil.MakeJSONRequest(gin.H{}, seekerToken, r, fmt.Sprintf("/api/v1/jobposting/%d/apply", postingID), http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The employer sees the application against their posting.
	rec, _ = testutil.MakeJSONRequest(nil, employerToken, r, fmt.Sprintf("/api/v1/jobposting/%d/applications", postingID), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Selam, I would love to join.")

	// The seeker got a job alert from the posting fan-out.
	rec, _ = testutil.MakeJSONRequest(nil, seekerToken, r, "/api/v1/notification", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_alert")
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestServer()

	token := registerAccount(t, r, gin.H{
		"email":    "seeker@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "job_seeker",
	})

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/v1/accounts/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/api/v1/auth/logout", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer passes authentication.
	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/api/v1/accounts/me", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, _ := newTestServer()

	token := registerAccount(t, r, gin.H{
		"email":    "seeker@ethiowork.test",
		"password": "SeedPass123!",
		"role":     "job_seeker",
	})

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/api/v1/admin/stats", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBannedAccountCannotMutate(t *testing.T) {
	r, ms := newTestServer()

	employerToken := registerAccount(t, r, gin.H{
		"email":        "employer@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Sheba Tech",
	})

	acc, err := ms.FindAccountByEmail(context.Background(), "employer@ethiowork.test")
	assert.NoError(t, err)
	assert.NoError(t, ms.SetBanned(context.Background(), acc.ID, true))

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title": "Should be blocked",
	}, employerToken, r, "/api/v1/jobposting", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Reads still work for banned accounts.
	rec, _ = testutil.MakeJSONRequest(nil, employerToken, r, "/api/v1/jobposting", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditPostingOwnershipEnforced(t *testing.T) {
	r, _ := newTestServer()

	ownerToken := registerAccount(t, r, gin.H{
		"email":        "owner@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Sheba Tech",
	})
	otherToken := registerAccount(t, r, gin.H{
		"email":        "other@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Blue Nile Logistics",
	})

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title": "Operations Analyst",
	}, ownerToken, r, "/api/v1/jobposting", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	postingID := int(resp["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title": "Hijacked",
	}, otherToken, r, fmt.Sprintf("/api/v1/jobposting/%d", postingID), http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{
		"title": "Operations Analyst II",
	}, ownerToken, r, fmt.Sprintf("/api/v1/jobposting/%d", postingID), http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Operations Analyst II", resp["title"])
}

func TestPausePostingHidesItFromListing(t *testing.T) {
	r, _ := newTestServer()

	ownerToken := registerAccount(t, r, gin.H{
		"email":        "owner@ethiowork.test",
		"password":     "SeedPass123!",
		"role":         "employer",
		"company_name": "Sheba Tech",
	})

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title": "Frontend Engineer",
	}, ownerToken, r, "/api/v1/jobposting", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	postingID := int(resp["id"].(float64))

	rec, resp = testutil.MakeJSONRequest(gin.H{}, ownerToken, r, fmt.Sprintf("/api/v1/jobposting/%d?status=paused", postingID), http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paused", resp["status"])

	rec, _ = testutil.MakeJSONRequest(nil, ownerToken, r, "/api/v1/jobposting", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Frontend Engineer")
}
