package notification

import (
	"context"
	"fmt"

	"courier/database/repository"
	"courier/models"
	"courier/services/dispatch"
	"courier/services/selection"

	"github.com/go-redis/redis/v8"
)

// NotificationService is the externally callable entry point of the
// dispatch engine: it resolves recipients and templates and combines the
// request builder with the delivery executor.
type NotificationService interface {
	FetchRecipients(ctx context.Context, userIDs []string) ([]models.User, error)
	FetchTemplate(ctx context.Context, templateID string) (*models.NotificationTemplate, error)
	ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error)
	Send(ctx context.Context, recipients []models.User, state selection.State, templateID, content string, opts models.SendOptions) (*models.DeliveryOutcome, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Directory  repository.DirectoryRepository
	Templates  repository.TemplateRepository
	Dispatcher dispatch.Dispatcher
	Cache      *redis.Client
}

func NewDefaultNotificationService(
	directory repository.DirectoryRepository,
	templates repository.TemplateRepository,
	dispatcher dispatch.Dispatcher,
	cache *redis.Client,
) (*DefaultNotificationService, error) {
	if directory == nil || templates == nil || dispatcher == nil {
		return nil, fmt.Errorf("notification service initialization error: missing collaborator")
	}
	return &DefaultNotificationService{
		Directory:  directory,
		Templates:  templates,
		Dispatcher: dispatcher,
		Cache:      cache,
	}, nil
}
