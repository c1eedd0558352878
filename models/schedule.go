package models

import "time"

// ScheduleEvent is one upcoming service pulled from the schedules
// collection by the reminder sweep.
type ScheduleEvent struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	RecipientName  string    `bson:"name" json:"name"`
	RecipientEmail string    `bson:"email" json:"email"`
	ServiceTime    time.Time `bson:"service_time" json:"service_time"`
}
