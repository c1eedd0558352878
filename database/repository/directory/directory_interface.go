package directoryRepo

import "courier/models"

// DirectoryRepository provides read access to notification recipients and
// their contacts.
type DirectoryRepository interface {
	// GetByIDs returns the users matching the given ids, in directory
	// order. Unknown ids are silently omitted, not errored.
	GetByIDs(ids []string) ([]models.User, error)
	GetByID(id string) (*models.User, error)
	Create(user *models.User) error
}
