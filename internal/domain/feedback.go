package domain

import "time"

// Feedback is a user message awaiting an administrative reply.
// The original message is kept as chat/message references so the
// transport can copy it verbatim to admins (any media type).
// Feedback items are append-only and never reordered, so a captured
// position stays valid for the lifetime of the process.
type Feedback struct {
	From      int64
	Username  string
	ChatID    int64
	MessageID int
	Answered  bool
	CreatedAt time.Time
}
