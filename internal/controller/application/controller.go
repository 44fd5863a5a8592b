// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// ApplicationController handles application related endpoints
type ApplicationController struct {
	Service *service.Service
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(svc *service.Service) *ApplicationController {
	return &ApplicationController{
		Service: svc,
	}
}

type applyInfo struct {
	CoverLetter string `json:"cover_letter"`
}

type statusInfo struct {
	Status string `json:"status" binding:"required"`
}

// ApplyHandler submits an application to a posting for the
// authenticated job seeker.
// @Summary Apply to a job posting
// @Description One application per posting per account. The posting's applications counter is incremented.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the posting to apply to"
// @Param Info body applyInfo false "Optional cover letter"
// @Success 201 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker, or account is banned"
// @Failure 404 {object} utilities.ErrorResponse "Posting not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this posting"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed job posting id"})
		return
	}

	var info applyInfo
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&info); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
	}

	app := model.Application{
		JobID:       uint(jobID),
		ApplicantID: acc.ID,
		CoverLetter: info.CoverLetter,
	}

	if _, err := ac.Service.ApplyToJob(c.Request.Context(), &app); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
		case errors.Is(err, store.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "You already applied to this job posting"})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetMyApplications lists every application the authenticated account
// has submitted, newest first.
// @Summary Get the authenticated account's applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/mine [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	apps, err := ac.Service.ListApplicationsByAccount(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// GetApplicationsByJob lists all applications to a posting. Only the
// posting owner or an admin may call it.
// @Summary Get applications to a job posting
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the posting"
// @Success 200 {array} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the posting owner"
// @Failure 404 {object} utilities.ErrorResponse "Posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/{id}/applications [get]
func (ac *ApplicationController) GetApplicationsByJob(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed job posting id"})
		return
	}

	posting, err := ac.Service.GetJobPosting(c.Request.Context(), uint(jobID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	if posting.EmployerID != acc.ID && acc.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view applications to this posting",
		})
		return
	}

	apps, err := ac.Service.ListApplicationsByJob(c.Request.Context(), uint(jobID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, apps)
}

// SetStatusHandler moves an application to a new status and notifies
// the applicant. Only the posting owner or an admin may call it.
// @Summary Set application status
// @Description Allowed statuses are pending, shortlisted, accepted and rejected. Any transition between them is permitted.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param Info body statusInfo true "New status"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Malformed id or unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the posting owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/status [patch]
func (ac *ApplicationController) SetStatusHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed application id"})
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be provided"})
		return
	}

	app, err := ac.Service.GetApplication(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if acc.Role != model.RoleAdmin {
		posting, err := ac.Service.GetJobPosting(c.Request.Context(), app.JobID)
		if err != nil || posting.EmployerID != acc.ID {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You are not allowed to manage this application",
			})
			return
		}
	}

	if err := ac.Service.SetApplicationStatus(c.Request.Context(), uint(id), info.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := ac.Service.GetApplication(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
