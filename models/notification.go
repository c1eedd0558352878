package models

import "time"

// DeliveryChannel is one (contact, type) pair a message goes out on.
// Priority is the 1-based position within the recipient's selected
// channels; it is a hint to the transport, not a cross-recipient ordering.
type DeliveryChannel struct {
	ContactID string      `json:"contact_id"`
	Type      ContactType `json:"type"`
	Address   string      `json:"address"`
	Verified  bool        `json:"is_verified"`
	Priority  int         `json:"priority"`
}

// DeliveryTarget is one recipient of a dispatch request. A target always
// carries at least one channel; zero-channel recipients are dropped before
// a request is built.
type DeliveryTarget struct {
	UserID   string            `json:"user_id"`
	Name     string            `json:"name"`
	Channels []DeliveryChannel `json:"delivery_channels"`
}

// SendOptions carry per-request delivery hints.
type SendOptions struct {
	SendImmediately bool `json:"send_immediately"`
	RetryFailed     bool `json:"retry_failed"`
	TrackDelivery   bool `json:"track_delivery"`
}

// DispatchRequest is the fully-resolved, ready-to-send representation of
// one notification job. Immutable once built.
type DispatchRequest struct {
	NotificationID string           `json:"notification_id"`
	Subject        string           `json:"subject,omitempty"`
	MessageContent string           `json:"message_content"`
	Recipients     []DeliveryTarget `json:"recipients"`
	Options        SendOptions      `json:"send_options"`
}

// DeliveryOutcome is the aggregated tally for one dispatch request.
// SuccessfulSends + FailedSends always equals TotalChannels.
type DeliveryOutcome struct {
	NotificationID  string    `json:"notification_id"`
	TotalRecipients int       `json:"total_recipients"`
	TotalChannels   int       `json:"total_channels"`
	SuccessfulSends int       `json:"successful_sends"`
	FailedSends     int       `json:"failed_sends"`
	SentAt          time.Time `json:"sent_at"`
}

// NotificationTemplate is a stored message template. Placeholder
// substitution is the template owner's concern, not the dispatch engine's.
type NotificationTemplate struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Subject   string    `bson:"subject" json:"subject"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
