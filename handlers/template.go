package handlers

import (
	"errors"
	"net/http"

	"courier/database/repository"
	"courier/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListTemplatesHandler returns all stored notification templates.
func (h *NotificationHandler) ListTemplatesHandler(c *gin.Context) {
	logger := getLogger(c)

	templates, err := h.Service.ListTemplates(c.Request.Context())
	if err != nil {
		logger.Error("failed to list templates", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list templates", err.Error())
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplateHandler returns one template by id.
func (h *NotificationHandler) GetTemplateHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	tpl, err := h.Service.FetchTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Template not found", id)
			return
		}
		logger.Error("failed to fetch template", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch template", err.Error())
		return
	}
	c.JSON(http.StatusOK, tpl)
}
