package models

import "time"

// ContactType identifies the delivery channel a contact belongs to.
type ContactType string

const (
	ContactTypeEmail ContactType = "email"
	ContactTypeSMS   ContactType = "sms"
	ContactTypePhone ContactType = "phone"
)

// Contact is a single address a user can be reached at. Contacts are owned
// by the directory and treated as immutable once fetched.
type Contact struct {
	ID        string      `bson:"id" json:"id"`
	Type      ContactType `bson:"type" json:"type"`
	Address   string      `bson:"value" json:"value"`
	Verified  bool        `bson:"is_verified" json:"is_verified"`
	IsPrimary bool        `bson:"is_primary" json:"is_primary"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}
