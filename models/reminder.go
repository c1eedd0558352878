package models

import "time"

// ReminderStatus is the lifecycle state of a persisted reminder record.
type ReminderStatus string

const (
	ReminderStatusSent ReminderStatus = "Sent"
)

// EntityTypeScheduleReminder keys reminder records created by the schedule
// sweep.
const EntityTypeScheduleReminder = "ScheduleReminder"

// ReminderRecord marks that a reminder was dispatched for a related entity.
// Records are created once, on successful dispatch, and never updated in
// place; their existence is what suppresses re-sending on later sweeps.
type ReminderRecord struct {
	NotificationID    string            `bson:"notification_id" json:"notification_id"`
	RuleID            string            `bson:"rule_id,omitempty" json:"rule_id,omitempty"`
	UserID            string            `bson:"user_id" json:"user_id"`
	RelatedEntityType string            `bson:"related_entity_type" json:"related_entity_type"`
	RelatedEntityID   string            `bson:"related_entity_id" json:"related_entity_id"`
	Status            ReminderStatus    `bson:"status" json:"status"`
	ScheduledTime     time.Time         `bson:"scheduled_time" json:"scheduled_time"`
	SentTime          time.Time         `bson:"sent_time" json:"sent_time"`
	DeliveryMethod    string            `bson:"delivery_method" json:"delivery_method"`
	DeliveryDetails   map[string]string `bson:"delivery_details,omitempty" json:"delivery_details,omitempty"`
	RetryCount        int               `bson:"retry_count" json:"retry_count"`
	CreatedAt         time.Time         `bson:"created_at" json:"created_at"`
}
