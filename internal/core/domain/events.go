package domain

import "time"

// DocumentSignedEvent represents the payload for portal.document.signed messages.
type DocumentSignedEvent struct {
	EventID        string
	DocumentID     string
	SignerID       string
	SignerEmail    string
	SignedAt       time.Time
	PendingSigners int
	Metadata       map[string]any
}

// DocumentFullySignedEvent represents the payload for portal.document.fully_signed messages.
type DocumentFullySignedEvent struct {
	EventID     string
	DocumentID  string
	SignerCount int
	CompletedAt time.Time
	Metadata    map[string]any
}

// DocumentRejectedEvent represents the payload for portal.document.rejected messages.
type DocumentRejectedEvent struct {
	EventID    string
	DocumentID string
	SignerID   string
	Comment    string
	RejectedAt time.Time
	Metadata   map[string]any
}

// DocumentExpiredEvent represents the payload for portal.document.expired messages.
type DocumentExpiredEvent struct {
	EventID    string
	DocumentID string
	ExpiredAt  time.Time
	Metadata   map[string]any
}

// DocumentPublishedEvent represents the payload for portal.document.published messages.
type DocumentPublishedEvent struct {
	EventID     string
	DocumentID  string
	PublishedBy string
	PublishedAt time.Time
	Metadata    map[string]any
}

// PermissionsUpdatedEvent represents the payload for portal.document.permissions_updated messages.
type PermissionsUpdatedEvent struct {
	EventID         string
	DocumentID      string
	UpdatedBy       string
	IsPublic        bool
	VisibilityCount int
	UsabilityCount  int
	UpdatedAt       time.Time
	Metadata        map[string]any
}
