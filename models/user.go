package models

import (
	"strings"
	"time"
)

// User is a notification recipient with an ordered set of contacts.
// Contact order follows the directory and is preserved end to end; it
// becomes the channel priority order in a dispatch request.
type User struct {
	ID         string    `bson:"id" json:"id"`
	FirstName  string    `bson:"first_name" json:"firstName"`
	LastName   string    `bson:"last_name" json:"lastName"`
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	Role       string    `bson:"role,omitempty" json:"role,omitempty"`
	Contacts   []Contact `bson:"contacts" json:"contacts"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// DisplayName returns the user's full name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
