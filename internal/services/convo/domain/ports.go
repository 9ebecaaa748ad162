package domain

import "context"

// StorePort is the conversation memory consumed by handlers and the chat module
type StorePort interface {
	// Update runs fn on the conversation under its lock, creating it if absent
	Update(id string, fn func(*State))
	// Snapshot returns a deep copy of the conversation, false when absent
	Snapshot(id string) (State, bool)
	// RecentTitles returns the title window without creating the conversation
	RecentTitles(id string) []string
	// Delete removes the conversation, false when absent
	Delete(id string) bool
	// Stats counts live conversations and logged messages
	Stats() Stats
}

// ArchivePort ships completed turns to durable storage
// Writes must never fail the caller; archiving is fire and forget
type ArchivePort interface {
	ArchiveTurn(ctx context.Context, t Turn)
	// History reads back the newest archived turns for a conversation
	History(ctx context.Context, conversationID string, limit int) ([]ArchivedTurn, error)
	// Enabled reports whether turns actually reach storage
	Enabled() bool
}
