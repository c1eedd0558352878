package scheduleRepo

import (
	"time"

	"courier/models"
)

// ScheduleRepository is the event source for the reminder sweep.
type ScheduleRepository interface {
	// FindDue returns events whose service time falls within
	// [windowStart, windowEnd].
	FindDue(windowStart, windowEnd time.Time) ([]models.ScheduleEvent, error)
}
