// Package rating provides HTTP handlers for account ratings.
package rating

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

// RatingController handles rating related endpoints
type RatingController struct {
	Service *service.Service
}

// NewRatingController creates a new instance of RatingController
func NewRatingController(svc *service.Service) *RatingController {
	return &RatingController{
		Service: svc,
	}
}

type ratingInfo struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	Rating        model.Rating `json:"rating"`
	RatingAverage float64      `json:"rating_average"`
}

// AddRatingHandler rates another account. One rating per rater per
// ratee; the ratee's aggregate is recomputed on success.
// @Summary Rate an account
// @Tags Rating
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Uuid of the account being rated"
// @Param Info body ratingInfo true "Score between 1 and 5 plus optional comment"
// @Success 201 {object} ratingResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid, score out of range, or self-rating"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Account not found"
// @Failure 409 {object} utilities.ErrorResponse "Already rated this account"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /accounts/{id}/rating [post]
func (rc *RatingController) AddRatingHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	ratedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed account id"})
		return
	}

	if ratedID == acc.ID {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You cannot rate yourself"})
		return
	}

	var info ratingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Score between 1 and 5 must be provided",
		})
		return
	}

	raterName := acc.Email
	if acc.SeekerProfile != nil && acc.SeekerProfile.FirstName != "" {
		raterName = acc.SeekerProfile.FirstName + " " + acc.SeekerProfile.LastName
	} else if acc.EmployerProfile != nil && acc.EmployerProfile.CompanyName != "" {
		raterName = acc.EmployerProfile.CompanyName
	}

	rating := model.Rating{
		RaterID:   acc.ID,
		RaterName: raterName,
		Score:     info.Score,
		Comment:   info.Comment,
	}

	average, err := rc.Service.AddRating(c.Request.Context(), ratedID, &rating)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Account not found"})
		case errors.Is(err, store.ErrDuplicateRating):
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "You already rated this account"})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to add rating: %s", err.Error()),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, ratingResponse{
		Rating:        rating,
		RatingAverage: average,
	})
}

// GetRatings lists every rating an account has received.
// @Summary Get ratings of an account
// @Tags Rating
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Uuid of the rated account"
// @Success 200 {array} model.Rating
// @Failure 400 {object} utilities.ErrorResponse "Malformed uuid"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /accounts/{id}/rating [get]
func (rc *RatingController) GetRatings(c *gin.Context) {
	ratedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed account id"})
		return
	}

	ratings, err := rc.Service.ListRatings(c.Request.Context(), ratedID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch ratings: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, ratings)
}
