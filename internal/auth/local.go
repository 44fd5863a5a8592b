package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// LocalAuthHandler holds the identity adapter and the data service for
// handler methods.
type LocalAuthHandler struct {
	Identity store.IdentityStore
	Service  *service.Service
	Log      *logrus.Logger
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with
// the provided identity adapter and data service.
func NewLocalAuthHandler(identity store.IdentityStore, svc *service.Service, logger *logrus.Logger) *LocalAuthHandler {
	return &LocalAuthHandler{
		Identity: identity,
		Service:  svc,
		Log:      logger,
	}
}

type registerInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=job_seeker employer"`

	// Optional starter profile fields, applied after the identity is
	// created.
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	Account     model.Account `json:"account"`
	AccessToken string        `json:"access_token"`
}

// RegisterHandler handles local registration by receiving email and password
// does nothing if email already exists in the database
// does nothing if password is shorter than 8 characters
// @Summary Handles local registration by receiving email, password and role
// @Description Email must not already exist and password must be longer or equal to 8 characters
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "role can be only 'job_seeker' or 'employer'"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password, and role (only 'job_seeker' or 'employer') must be provided",
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should be longer or equal to 8 characters",
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

	acc := model.Account{
		Email:        info.Email,
		PasswordHash: hashedPassword,
		Role:         info.Role,
	}

	if err := lh.Identity.CreateIdentity(c.Request.Context(), &acc); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Email already registered",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create account: %s", err.Error()),
		})
		return
	}

	// The identity row exists from here on. The starter profile write
	// is secondary; losing it leaves a registered account with an empty
	// profile, never a half-created identity.
	switch info.Role {
	case model.RoleJobSeeker:
		acc.SeekerProfile = &model.SeekerProfile{
			AccountID: acc.ID,
			FirstName: info.FirstName,
			LastName:  info.LastName,
		}
	case model.RoleEmployer:
		acc.EmployerProfile = &model.EmployerProfile{
			AccountID:   acc.ID,
			CompanyName: info.CompanyName,
		}
	}
	if err := lh.Service.CreateAccountProfile(c.Request.Context(), &acc); err != nil {
		lh.Log.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Warn("starter profile write failed after registration")
	}

	accessToken, _, err := generateToken(acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Account:     acc,
		AccessToken: accessToken,
	})
}

// LoginHandler handles local login by receiving email and password
// does nothing if email does not exist in the database
// does nothing if password is incorrect
// @Summary Handles local login by receiving email and password
// @Description Email must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account is banned"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}

	acc, err := lh.Identity.FindAccountByEmail(c.Request.Context(), info.Email)

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
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

	if acc.PasswordHash == "" || !utilities.VerifyPassword(info.Password, acc.PasswordHash) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if acc.Banned {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is banned",
		})
		return
	}

	full, err := lh.Service.GetAccountProfile(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve account data: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := generateToken(acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Account:     *full,
		AccessToken: accessToken,
	})
}
