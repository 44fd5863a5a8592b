package utilities

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ethiowork-backend/internal/model"
)

func newRequestWithAuth(header string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestMergeNonEmpty(t *testing.T) {
	dst := model.SeekerProfile{
		FirstName: "Abel",
		LastName:  "Tesfaye",
		Headline:  "Backend developer",
	}
	src := model.SeekerProfile{
		Headline: "Staff engineer",
		Location: "Addis Ababa",
	}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "Staff engineer", dst.Headline)
	assert.Equal(t, "Addis Ababa", dst.Location)
	assert.Equal(t, "Abel", dst.FirstName, "zero fields in src must not overwrite dst")
}

func TestExtractAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(nil)

	_, err := ExtractAccount(c)
	assert.Error(t, err)

	want := model.Account{Email: "abel@ethiowork.test", Role: model.RoleJobSeeker}
	c.Set("account", want)

	got, err := ExtractAccount(c)
	assert.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(nil)
	c.Request = newRequestWithAuth("Bearer sometoken")
	token, err := ExtractBearerToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)

	c, _ = gin.CreateTestContext(nil)
	c.Request = newRequestWithAuth("")
	_, err = ExtractBearerToken(c)
	assert.Error(t, err)

	c, _ = gin.CreateTestContext(nil)
	c.Request = newRequestWithAuth("Bearer ")
	_, err = ExtractBearerToken(c)
	assert.Error(t, err)
}
