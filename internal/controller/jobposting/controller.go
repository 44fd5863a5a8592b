// Package jobposting provides HTTP handlers for job posting operations.
package jobposting

import (
	"encoding/json"
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

// JobPostingController handles job posting related endpoints
type JobPostingController struct {
	Service *service.Service
}

// NewJobPostingController creates a new instance of JobPostingController
func NewJobPostingController(svc *service.Service) *JobPostingController {
	return &JobPostingController{
		Service: svc,
	}
}

func parsePostingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed job posting id"})
		return 0, false
	}
	return uint(id), true
}

// CreateJobPostingHandler handles the creation of a new posting by an employer.
// @Summary Create job posting based on given json structure
// @Description Only employers have access to this endpoint. Job seekers are alerted about the new posting.
// @Tags Jobposting
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Jobposting body model.EditableJobPostingInfo true "Input job posting information"
// @Success 201 {object} model.JobPosting "Successfully created job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job posting struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer, or account is banned"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting [post]
func (jc *JobPostingController) CreateJobPostingHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	posting := model.JobPosting{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&posting.EditableJobPostingInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	posting.EmployerID = acc.ID
	if _, err := jc.Service.CreateJobPosting(c.Request.Context(), &posting); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job posting: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, posting)
}

// GetPostings fetches all active postings, newest first.
// @Summary Get active job postings
// @Tags Jobposting
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobPosting
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting [get]
func (jc *JobPostingController) GetPostings(c *gin.Context) {
	postings, err := jc.Service.ListActiveJobPostings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job postings: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, postings)
}

// GetMyPostings fetches every posting owned by the requesting employer,
// whatever its status.
// @Summary Get the employer's own job postings
// @Tags Jobposting
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobPosting
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/mine [get]
func (jc *JobPostingController) GetMyPostings(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	postings, err := jc.Service.ListJobPostingsByEmployer(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job postings: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, postings)
}

// GetPostingByID fetches a job posting by its ID.
// @Summary Get job posting by ID
// @Tags Jobposting
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} model.JobPosting
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/{id} [get]
func (jc *JobPostingController) GetPostingByID(c *gin.Context) {
	id, ok := parsePostingID(c)
	if !ok {
		return
	}

	posting, err := jc.Service.GetJobPosting(c.Request.Context(), id)
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

	c.JSON(http.StatusOK, posting)
}

// EditJobPosting allows an employer to update a posting they own.
// Status changes (active, paused, closed) ride the same endpoint via
// the status query parameter.
// @Summary Edit job posting based on given json structure
// @Description Only the employer that owns the posting or an admin has access to this endpoint
// @Tags Jobposting
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Param status query string false "New status (active, paused, closed)"
// @Param Jobposting body model.EditableJobPostingInfo true "Input job posting information"
// @Success 200 {object} model.JobPosting "Posting after the update"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id, status, or posting struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/{id} [patch]
func (jc *JobPostingController) EditJobPosting(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, ok := parsePostingID(c)
	if !ok {
		return
	}

	posting, err := jc.Service.GetJobPosting(c.Request.Context(), id)
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
			Error: "You are not allowed to edit this job posting",
		})
		return
	}

	updated := model.JobPosting{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableJobPostingInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := jc.Service.UpdateJobPosting(c.Request.Context(), id, &updated.EditableJobPostingInfo); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job posting: %s", err.Error()),
		})
		return
	}

	if status := c.Query("status"); status != "" {
		if status != model.PostingStatusActive && status != model.PostingStatusPaused && status != model.PostingStatusClosed {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Unknown posting status: %s", status),
			})
			return
		}
		if err := jc.Service.SetJobPostingStatus(c.Request.Context(), id, status); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update posting status: %s", err.Error()),
			})
			return
		}
	}

	reloaded, err := jc.Service.GetJobPosting(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, reloaded)
}

// DeleteJobPosting allows an employer to delete a posting they own.
// @Summary Delete given job posting ID
// @Description Only the employer that owns the posting or an admin has access to this endpoint
// @Tags Jobposting
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} utilities.MessageResponse "Successfully deleted job posting"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this posting"
// @Failure 404 {object} utilities.ErrorResponse "Posting not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobposting/{id} [delete]
func (jc *JobPostingController) DeleteJobPosting(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, ok := parsePostingID(c)
	if !ok {
		return
	}

	posting, err := jc.Service.GetJobPosting(c.Request.Context(), id)
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

	if posting.EmployerID != acc.ID {
		// Allow admins to bypass ownership check
		if acc.Role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You are not allowed to delete this job posting",
			})
			return
		}
	}

	if err := jc.Service.DeleteJobPosting(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job posting: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job posting deleted"})
}
