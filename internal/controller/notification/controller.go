// Package notification provides HTTP handlers for the notification feed.
package notification

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

// NotificationController handles notification related endpoints
type NotificationController struct {
	Service *service.Service
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(svc *service.Service) *NotificationController {
	return &NotificationController{
		Service: svc,
	}
}

// GetNotifications lists the authenticated account's notifications,
// newest first.
// @Summary Get the authenticated account's notifications
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Notification
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notification [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	notifications, err := nc.Service.ListNotifications(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch notifications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkReadHandler marks one of the account's notifications read.
// Idempotent.
// @Summary Mark a notification read
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the notification"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notification/{id}/read [post]
func (nc *NotificationController) MarkReadHandler(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Malformed notification id"})
		return
	}

	if err := nc.Service.MarkNotificationRead(c.Request.Context(), acc.ID, uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to mark notification read: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Notification marked read"})
}
