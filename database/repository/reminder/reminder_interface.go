package reminderRepo

import "courier/models"

// ReminderRepository persists reminder records, the idempotency guard for
// the sweep. InsertIfAbsent must be atomic: when two processes race on the
// same (related_entity_type, related_entity_id) key, exactly one insert
// succeeds.
type ReminderRepository interface {
	ExistsByEntity(entityType, entityID string) (bool, error)
	// InsertIfAbsent inserts the record and reports whether it was
	// inserted. false with a nil error means a record for the same key
	// already existed.
	InsertIfAbsent(rec *models.ReminderRecord) (bool, error)
}
