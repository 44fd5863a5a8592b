// Package admin provides HTTP handlers for moderation endpoints.
package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// AdminController handles moderation endpoints. Routes using it sit
// behind CheckRole(model.RoleAdmin).
type AdminController struct {
	Service *service.Service
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(svc *service.Service) *AdminController {
	return &AdminController{
		Service: svc,
	}
}

// ListAccounts returns all accounts, optionally filtered by role.
// @Summary List accounts for moderation
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role query string false "Filter by role (job_seeker, employer, admin)"
// @Success 200 {array} model.Account
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/accounts [get]
func (ac *AdminController) ListAccounts(c *gin.Context) {
	role := c.Query("role")

	var err error
	var accounts interface{}
	if role != "" {
		accounts, err = ac.Service.ListAccountsByRole(c.Request.Context(), role)
	} else {
		accounts, err = ac.Service.ListAccounts(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to list accounts: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// BanAccount bans the given account. Idempotent.
// @Summary Ban an account
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Account uuid"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 404 {object} utilities.ErrorResponse "Account not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/accounts/{id}/ban [post]
func (ac *AdminController) BanAccount(c *gin.Context) {
	ac.setBanned(c, true, "Account banned")
}

// UnbanAccount lifts a ban. Idempotent.
// @Summary Unban an account
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Account uuid"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 404 {object} utilities.ErrorResponse "Account not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/accounts/{id}/unban [post]
func (ac *AdminController) UnbanAccount(c *gin.Context) {
	ac.setBanned(c, false, "Account unbanned")
}

func (ac *AdminController) setBanned(c *gin.Context, banned bool, okMessage string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed account id"})
		return
	}

	if banned {
		err = ac.Service.BanAccount(c.Request.Context(), id)
	} else {
		err = ac.Service.UnbanAccount(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update account: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: okMessage})
}

// DeleteAccount removes an account and its owned records. Postings and
// applications the account created stay behind.
// @Summary Delete an account
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Account uuid"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 404 {object} utilities.ErrorResponse "Account not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/accounts/{id} [delete]
func (ac *AdminController) DeleteAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed account id"})
		return
	}

	if err := ac.Service.DeleteAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete account: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Account deleted"})
}

// GetStats returns marketplace-wide row counts.
// @Summary Get aggregate counts
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Counts
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/stats [get]
func (ac *AdminController) GetStats(c *gin.Context) {
	counts, err := ac.Service.AggregateCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to aggregate counts: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, counts)
}
