package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courier/models"
	"courier/services/dispatch"
	"courier/services/selection"
	"courier/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultWindow = 24 * time.Hour

	defaultSubject = "Reminder: Upcoming Volunteer Service"
	defaultBody    = "Hi {name}, your volunteer service is scheduled for {time}."
)

// RunSweep finds events due within the lookahead window and dispatches at
// most one reminder per event. The idempotency guard is check-then-act
// against the record store: a record is looked up before any dispatch, and
// persisted only after the executor returns without a fatal error, so a
// failed attempt leaves the event eligible for the next sweep. A guard
// lookup failure fails closed: the event is skipped rather than risking a
// double send. One event's failure never halts the sweep.
func (s *DefaultReminderService) RunSweep(ctx context.Context, now time.Time) (Summary, error) {
	log := utils.GetLogger()
	window := s.Window
	if window <= 0 {
		window = defaultWindow
	}

	events, err := s.Events.FindDue(now, now.Add(window))
	if err != nil {
		return Summary{}, fmt.Errorf("reminder sweep: failed to find due events: %w", err)
	}
	if len(events) == 0 {
		log.Debug("reminder sweep found no due events", zap.Time("window_start", now), zap.Duration("window", window))
		return Summary{}, nil
	}

	subject, body := s.reminderTemplate(ctx)

	var summary Summary
	for _, ev := range events {
		key := s.entityKey(ev)

		exists, err := s.Records.ExistsByEntity(models.EntityTypeScheduleReminder, key)
		if err != nil {
			// Fail closed: without a trustworthy guard answer, sending
			// could duplicate a prior reminder.
			log.Error("reminder guard lookup failed, skipping event",
				zap.String("event_id", ev.ID), zap.Error(err))
			summary.Failed++
			utils.SweepEventsTotal.WithLabelValues("failed").Inc()
			continue
		}
		if exists {
			log.Info("reminder already sent, skipping",
				zap.String("event_id", ev.ID), zap.String("recipient", ev.RecipientName))
			summary.Skipped++
			utils.SweepEventsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		outcome, err := s.dispatchReminder(ctx, ev, subject, body)
		if err != nil {
			// No record is written: the event stays due-unsent and the
			// sweep interval acts as the retry backoff.
			log.Warn("reminder dispatch failed, will retry next sweep",
				zap.String("event_id", ev.ID), zap.Error(err))
			summary.Failed++
			utils.SweepEventsTotal.WithLabelValues("failed").Inc()
			continue
		}

		rec := &models.ReminderRecord{
			NotificationID:    uuid.NewString(),
			UserID:            ev.UserID,
			RelatedEntityType: models.EntityTypeScheduleReminder,
			RelatedEntityID:   key,
			Status:            models.ReminderStatusSent,
			ScheduledTime:     ev.ServiceTime,
			SentTime:          time.Now(),
			DeliveryMethod:    "Email",
			DeliveryDetails:   map[string]string{"email": ev.RecipientEmail},
		}
		inserted, err := s.Records.InsertIfAbsent(rec)
		if err != nil {
			// The send already happened; it counts. The missing record
			// may cause a re-send next sweep, the documented trade-off
			// of guarding before the send rather than after.
			log.Error("failed to persist reminder record",
				zap.String("event_id", ev.ID), zap.Error(err))
		} else if !inserted {
			// Another sweep recorded this event after our guard check; a
			// normal race outcome, not an error.
			log.Warn("reminder record already present after send",
				zap.String("event_id", ev.ID))
		}

		log.Info("reminder sent",
			zap.String("event_id", ev.ID),
			zap.String("recipient", ev.RecipientName),
			zap.String("email", ev.RecipientEmail),
			zap.Int("successful_sends", outcome.SuccessfulSends),
		)
		summary.Sent++
		utils.SweepEventsTotal.WithLabelValues("sent").Inc()
	}

	log.Info("reminder sweep complete",
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// dispatchReminder routes a single event through the same builder and
// executor as the interactive path.
func (s *DefaultReminderService) dispatchReminder(ctx context.Context, ev models.ScheduleEvent, subject, body string) (*models.DeliveryOutcome, error) {
	content := strings.NewReplacer(
		"{name}", ev.RecipientName,
		"{time}", ev.ServiceTime.Format("Mon, Jan 2 2006 at 3:04 PM"),
	).Replace(body)

	recipient := models.User{
		ID:        ev.UserID,
		FirstName: ev.RecipientName,
		Contacts: []models.Contact{{
			ID:        "schedule:" + ev.ID,
			Type:      models.ContactTypeEmail,
			Address:   ev.RecipientEmail,
			Verified:  true,
			IsPrimary: true,
		}},
	}
	recipients := []models.User{recipient}

	req, err := dispatch.BuildRequest(recipients, selection.Initialize(recipients), s.TemplateID, content, models.SendOptions{
		SendImmediately: true,
		TrackDelivery:   true,
	})
	if err != nil {
		return nil, err
	}
	req.Subject = subject

	return s.Dispatcher.Execute(ctx, req)
}

// reminderTemplate loads the stored reminder template, falling back to the
// built-in wording when the store has none.
func (s *DefaultReminderService) reminderTemplate(ctx context.Context) (subject, body string) {
	subject, body = defaultSubject, defaultBody
	if s.Templates == nil || s.TemplateID == "" {
		return subject, body
	}
	tpl, err := s.Templates.GetByID(s.TemplateID)
	if err != nil {
		utils.GetLogger().Warn("reminder template unavailable, using default wording",
			zap.String("template_id", s.TemplateID), zap.Error(err))
		return subject, body
	}
	if tpl.Subject != "" {
		subject = tpl.Subject
	}
	if tpl.Content != "" {
		body = tpl.Content
	}
	return subject, body
}

// entityKey derives the record key for an event per the configured
// strategy.
func (s *DefaultReminderService) entityKey(ev models.ScheduleEvent) string {
	if s.KeyStrategy == EntityTimeKey {
		return ev.ID + "@" + ev.ServiceTime.UTC().Format(time.RFC3339)
	}
	return ev.ID
}
