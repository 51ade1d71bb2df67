package memory

import "context"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversation entry, oldest-first in any history slice.
type Turn struct {
	Role Role
	Text string
}

// Store holds per-session conversation history. Implementations cap each
// session at a fixed number of turns, evicting oldest-first, and must be
// safe for concurrent use across sessions. Concurrent appends to the same
// session are last-write-wins; no per-session serialization is promised.
type Store interface {
	// History returns the session's turns, oldest first. An unknown
	// session yields an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]Turn, error)
	// Append adds turns to the session, creating it on first contact,
	// then evicts the oldest turns beyond the cap.
	Append(ctx context.Context, sessionID string, turns ...Turn) error
}
