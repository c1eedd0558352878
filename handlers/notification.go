package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"courier/database/repository"
	"courier/models"
	"courier/services/dispatch"
	"courier/services/notification"
	"courier/services/selection"
	"courier/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the interactive send path.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// sendRequest is the interactive send payload. Selections override the
// primary-contact defaults per (user id, contact id) pair.
type sendRequest struct {
	UserIDs        []string                   `json:"user_ids" binding:"required"`
	NotificationID string                     `json:"notification_id" binding:"required"`
	Content        string                     `json:"content"`
	Selections     map[string]map[string]bool `json:"selections"`
	Options        models.SendOptions         `json:"send_options"`
}

// SendNotificationHandler resolves recipients, applies selection overrides
// and dispatches the notification, returning the aggregated outcome.
func (h *NotificationHandler) SendNotificationHandler(c *gin.Context) {
	logger := getLogger(c)

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("invalid send request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	recipients, err := h.Service.FetchRecipients(c.Request.Context(), req.UserIDs)
	if err != nil {
		if errors.Is(err, notification.ErrNoRecipientsFound) {
			utils.JSONError(c, http.StatusNotFound, "No recipients found", "none of the given user ids exist")
			return
		}
		logger.Error("failed to fetch recipients", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch recipients", err.Error())
		return
	}

	// Defaults follow the primary flag on each contact; explicit
	// selections override per pair.
	state := selection.Initialize(recipients)
	for userID, contacts := range req.Selections {
		for contactID, selected := range contacts {
			next, ok := state.SetContact(userID, contactID, selected)
			if !ok {
				utils.JSONError(c, http.StatusBadRequest, "Unknown selection",
					fmt.Sprintf("user %s has no contact %s", userID, contactID))
				return
			}
			state = next
		}
	}

	// Send is disabled when nothing is selected.
	if totals := state.Totals(recipients); totals.Recipients == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Nothing to send", "no recipients with selected channels")
		return
	}

	outcome, err := h.Service.Send(c.Request.Context(), recipients, state, req.NotificationID, req.Content, req.Options)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTemplateNotFound):
			utils.JSONError(c, http.StatusNotFound, "Template not found", req.NotificationID)
		case errors.Is(err, dispatch.ErrEmptyMessage), errors.Is(err, dispatch.ErrNoEligibleTargets):
			utils.JSONError(c, http.StatusBadRequest, "Cannot send notification", err.Error())
		case errors.Is(err, dispatch.ErrTransportUnavailable):
			logger.Error("transport outage during send", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Delivery channels unavailable", err.Error())
		default:
			logger.Error("failed to send notification", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to send notification", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notifications sent",
		"outcome": outcome,
	})
}
