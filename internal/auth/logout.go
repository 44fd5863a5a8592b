package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"ethiowork-backend/internal/utilities"
)

// LogoutController handles user logout by revoking JWT tokens
type LogoutController struct {
	RevocationStore JwtRevocationStore
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(revocationStore JwtRevocationStore) *LogoutController {
	return &LogoutController{
		RevocationStore: revocationStore,
	}
}

// LogoutHandler handles user logout by revoking the JWT token id
// @Summary Revokes the presented access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing or malformed token"
// @Failure 500 {object} utilities.ErrorResponse "Revocation store failure"
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {
	claims, err := extractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = lc.RevocationStore.Revoke(claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}

func extractClaims(c *gin.Context) (*jwt.RegisteredClaims, error) {
	claims, ok := c.Get("claims")
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	realClaims, okCast := claims.(*jwt.RegisteredClaims)
	if !okCast {
		return nil, fmt.Errorf("invalid token claims type")
	}
	return realClaims, nil
}
