package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/mailer"
	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

const resetTokenTTL = 30 * time.Minute

// PasswordResetController issues single-use reset tokens by mail and
// consumes them. Only the SHA-256 hash of a token is ever stored.
type PasswordResetController struct {
	Identity store.IdentityStore
	Mailer   mailer.Mailer
	Log      *logrus.Logger
}

// NewPasswordResetController creates a new instance of PasswordResetController
func NewPasswordResetController(identity store.IdentityStore, m mailer.Mailer, logger *logrus.Logger) *PasswordResetController {
	return &PasswordResetController{
		Identity: identity,
		Mailer:   m,
		Log:      logger,
	}
}

type forgotInfo struct {
	Email string `json:"email" binding:"required,email"`
}

type resetInfo struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ForgotPasswordHandler mails a reset link to the given address
// @Summary Requests a password reset mail
// @Description Responds identically whether or not the address is registered
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body forgotInfo true "Address to send the reset link to"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Email not provided"
// @Failure 500 {object} utilities.ErrorResponse "Database or mail delivery error"
// @Router /auth/password/forgot [post]
func (pc *PasswordResetController) ForgotPasswordHandler(c *gin.Context) {
	var info forgotInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "A valid email must be provided",
		})
		return
	}

	acknowledged := utilities.MessageResponse{
		Message: "If that address is registered, a reset mail is on its way",
	}

	acc, err := pc.Identity.FindAccountByEmail(c.Request.Context(), info.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Do not leak which addresses exist.
		c.JSON(http.StatusOK, acknowledged)
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate reset token: %s", err.Error()),
		})
		return
	}
	rawToken := hex.EncodeToString(raw)

	// One live token per account: requesting again invalidates earlier
	// mails.
	if err := pc.Identity.RevokeResetTokensForAccount(c.Request.Context(), acc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	token := model.PasswordResetToken{
		AccountID: acc.ID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := pc.Identity.CreateResetToken(c.Request.Context(), &token); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", frontendBaseURL(), rawToken)
	if err := pc.Mailer.SendPasswordReset(acc.Email, resetURL); err != nil {
		pc.Log.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Error("failed to send password reset mail")
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send reset mail",
		})
		return
	}

	c.JSON(http.StatusOK, acknowledged)
}

// ResetPasswordHandler consumes a reset token and sets a new password
// @Summary Sets a new password using a mailed reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body resetInfo true "Token from the reset mail plus the new password"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Token invalid, expired, already used, or password too short"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/password/reset [post]
func (pc *PasswordResetController) ResetPasswordHandler(c *gin.Context) {
	var info resetInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Token and new password must be provided",
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should be longer or equal to 8 characters",
		})
		return
	}

	token, err := pc.Identity.FindResetToken(c.Request.Context(), hashResetToken(info.Token))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Reset token is invalid",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if token.Revoked || time.Now().After(token.ExpiresAt) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Reset token is expired or already used",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to hash password: %s", err.Error()),
		})
		return
	}

	if err := pc.Identity.UpdatePassword(c.Request.Context(), token.AccountID, hashedPassword); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update password: %s", err.Error()),
		})
		return
	}

	if err := pc.Identity.RevokeResetToken(c.Request.Context(), token.ID); err != nil {
		pc.Log.WithFields(logrus.Fields{
			"token_id": token.ID,
			"error":    err.Error(),
		}).Warn("failed to revoke consumed reset token")
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Password updated"})
}

func frontendBaseURL() string {
	if base := os.Getenv("FRONTEND_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:3000"
}
