package handlers

import (
	"net/http"
	"time"

	"courier/services/reminder"
	"courier/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes a manual trigger for the reminder sweep.
type ReminderHandler struct {
	Service reminder.ReminderService
}

func NewReminderHandler(svc reminder.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: svc}
}

// RunSweepHandler runs one sweep immediately and returns its tally.
func (h *ReminderHandler) RunSweepHandler(c *gin.Context) {
	logger := getLogger(c)

	summary, err := h.Service.RunSweep(c.Request.Context(), time.Now())
	if err != nil {
		logger.Error("manual reminder sweep failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Reminder sweep failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
