package templateRepo

import (
	"errors"

	"courier/models"
)

// ErrTemplateNotFound is returned when no template exists for the given id.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRepository provides access to stored notification templates.
type TemplateRepository interface {
	GetByID(id string) (*models.NotificationTemplate, error)
	GetAll() ([]models.NotificationTemplate, error)
	Create(tpl *models.NotificationTemplate) error
}
