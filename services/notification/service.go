package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"courier/models"
	"courier/services/dispatch"
	"courier/services/selection"
	"courier/utils"

	"go.uber.org/zap"
)

// ErrNoRecipientsFound mirrors the directory contract: unknown ids are
// omitted, but an entirely empty result is a caller-visible precondition
// violation.
var ErrNoRecipientsFound = fmt.Errorf("no recipients found")

// FetchRecipients resolves user ids against the directory. Unknown ids are
// silently omitted; an empty result is an error.
func (s *DefaultNotificationService) FetchRecipients(ctx context.Context, userIDs []string) ([]models.User, error) {
	users, err := s.Directory.GetByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipients: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoRecipientsFound
	}
	return users, nil
}

// FetchTemplate resolves a template by id, consulting the Redis cache
// first. A missing id is surfaced before any dispatch request is built.
func (s *DefaultNotificationService) FetchTemplate(ctx context.Context, templateID string) (*models.NotificationTemplate, error) {
	cacheKey := "template:" + templateID

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var tpl models.NotificationTemplate
			if err := json.Unmarshal([]byte(raw), &tpl); err == nil {
				return &tpl, nil
			}
		}
	}

	tpl, err := s.Templates.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(tpl); err == nil {
			// Best effort; a cache write failure never blocks a send.
			s.Cache.Set(ctx, cacheKey, raw, utils.TemplateCacheTTL)
		}
	}
	return tpl, nil
}

// ListTemplates returns all stored templates.
func (s *DefaultNotificationService) ListTemplates(ctx context.Context) ([]models.NotificationTemplate, error) {
	templates, err := s.Templates.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// Send builds a dispatch request from the recipients and their selection
// state and runs it to completion. Content overrides the template body when
// non-blank; the template's subject always applies. Partial failure is
// reported through the outcome, never as an error.
func (s *DefaultNotificationService) Send(
	ctx context.Context,
	recipients []models.User,
	state selection.State,
	templateID, content string,
	opts models.SendOptions,
) (*models.DeliveryOutcome, error) {
	tpl, err := s.FetchTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	body := content
	if strings.TrimSpace(body) == "" {
		body = tpl.Content
	}

	req, err := dispatch.BuildRequest(recipients, state, templateID, body, opts)
	if err != nil {
		return nil, err
	}
	req.Subject = tpl.Subject

	outcome, err := s.Dispatcher.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("notification sent",
		zap.String("notification_id", outcome.NotificationID),
		zap.Int("total_recipients", outcome.TotalRecipients),
		zap.Int("successful_sends", outcome.SuccessfulSends),
		zap.Int("failed_sends", outcome.FailedSends),
	)
	return outcome, nil
}
