// Package savedjob provides HTTP handlers for the saved-jobs list.
package savedjob

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/utilities"
)

// SavedJobController handles saved-job related endpoints
type SavedJobController struct {
	Service *service.Service
}

// NewSavedJobController creates a new instance of SavedJobController
func NewSavedJobController(svc *service.Service) *SavedJobController {
	return &SavedJobController{
		Service: svc,
	}
}

func parseJobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed job posting id"})
		return 0, false
	}
	return uint(id), true
}

// SaveHandler bookmarks a posting for the authenticated account.
// Saving twice is a no-op.
// @Summary Save a job posting
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the posting to save"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /savedjob/{id} [post]
func (sc *SavedJobController) SaveHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	if _, err := sc.Service.GetJobPosting(c.Request.Context(), jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job posting: %s", err.Error()),
		})
		return
	}

	if err := sc.Service.SaveJob(c.Request.Context(), acc.ID, jobID); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job posting saved"})
}

// UnsaveHandler removes a bookmark.
// @Summary Unsave a job posting
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the posting to unsave"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Posting was not saved"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /savedjob/{id} [delete]
func (sc *SavedJobController) UnsaveHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	if err := sc.Service.UnsaveJob(c.Request.Context(), acc.ID, jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job posting was not saved"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to unsave job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job posting unsaved"})
}

// GetSavedJobs lists the authenticated account's bookmarks.
// @Summary Get the authenticated account's saved jobs
// @Tags SavedJob
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.SavedJob
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /savedjob [get]
func (sc *SavedJobController) GetSavedJobs(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	saved, err := sc.Service.ListSavedJobs(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch saved jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, saved)
}
