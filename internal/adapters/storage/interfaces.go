package storage

import "studyspace-client/internal/core/domain"

// SessionStore holds the authenticated identity. Implementations must
// populate and clear the session atomically and normalize legacy values on
// read (see normalize).
type SessionStore interface {
	// Read returns the stored session, or a zero session when logged out
	Read() (domain.Session, error)
	// Write replaces the stored session
	Write(session domain.Session) error
	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}

// Older clients persisted the literal string "undefined" where the full
// name was missing. The sentinel must never leak past the read boundary.
const legacyMissingName = "undefined"

func normalize(s domain.Session) domain.Session {
	if s.FullName == legacyMissingName {
		s.FullName = ""
	}
	return s
}
