package reminder

import (
	"context"
	"fmt"
	"time"

	"courier/database/repository"
	"courier/services/dispatch"
)

// Summary is the per-sweep tally logged and returned to the trigger.
type Summary struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReminderService runs the time-windowed reminder sweep. The sweep is
// invoked by an external trigger (cron/timer); it never schedules itself.
type ReminderService interface {
	RunSweep(ctx context.Context, now time.Time) (Summary, error)
}

// Key strategies for reminder records. EntityKey gives one reminder per
// entity id, ever; EntityTimeKey re-keys on the event's scheduled time, so
// an event whose time is edited is reminded again.
const (
	EntityKey     = "entity"
	EntityTimeKey = "entity-time"
)

// DefaultReminderService is the production implementation.
type DefaultReminderService struct {
	Events     repository.ScheduleRepository
	Records    repository.ReminderRepository
	Templates  repository.TemplateRepository
	Dispatcher dispatch.Dispatcher

	// Window is the sweep lookahead; zero means 24 hours.
	Window time.Duration
	// KeyStrategy is EntityKey or EntityTimeKey.
	KeyStrategy string
	// TemplateID names the stored reminder template.
	TemplateID string
}

func NewDefaultReminderService(
	events repository.ScheduleRepository,
	records repository.ReminderRepository,
	templates repository.TemplateRepository,
	dispatcher dispatch.Dispatcher,
	window time.Duration,
	keyStrategy string,
	templateID string,
) (*DefaultReminderService, error) {
	if events == nil || records == nil || dispatcher == nil {
		return nil, fmt.Errorf("reminder service initialization error: missing collaborator")
	}
	return &DefaultReminderService{
		Events:      events,
		Records:     records,
		Templates:   templates,
		Dispatcher:  dispatcher,
		Window:      window,
		KeyStrategy: keyStrategy,
		TemplateID:  templateID,
	}, nil
}
