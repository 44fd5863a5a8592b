// Package account provides HTTP handlers for account and profile operations.
package account

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// AccountController handles account related endpoints
type AccountController struct {
	Service *service.Service
}

// NewAccountController creates a new instance of AccountController
func NewAccountController(svc *service.Service) *AccountController {
	return &AccountController{
		Service: svc,
	}
}

// GetMe returns the authenticated account with its profile.
// @Summary Get the authenticated account
// @Tags Account
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Account
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /accounts/me [get]
func (ac *AccountController) GetMe(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, acc)
}

// GetAccountByID returns a public view of any account.
// @Summary Get account by ID
// @Tags Account
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Account uuid"
// @Success 200 {object} model.Account
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 404 {object} utilities.ErrorResponse "Account not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /accounts/{id} [get]
func (ac *AccountController) GetAccountByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed account id"})
		return
	}

	acc, err := ac.Service.GetAccountProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve account: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, acc)
}

// UpdateProfile merges non-empty fields of the submitted profile into
// the authenticated account. Role, email and password are ignored even
// when present in the body.
// @Summary Update the authenticated account's profile
// @Tags Account
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.Account true "Profile fields to merge"
// @Success 200 {object} model.Account "Profile after the merge"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /accounts/me [patch]
func (ac *AccountController) UpdateProfile(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var patch model.Account
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := ac.Service.UpdateAccountProfile(c.Request.Context(), acc.ID, &patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	updated, err := ac.Service.GetAccountProfile(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
