package session

import "errors"

var (
	// ErrSessionNotFound means no session owns the given stream key or id.
	ErrSessionNotFound = errors.New("session: not found")
	// ErrStreamKeyRetired means the credential already ended once and may
	// never go live again.
	ErrStreamKeyRetired = errors.New("session: stream key retired")
	// ErrInvalidTransition means an owner-driven status edit is not allowed
	// from the current state.
	ErrInvalidTransition = errors.New("session: invalid status transition")
	// ErrBadState means the stored row is impossible (live with an end time).
	// It is surfaced, never silently repaired.
	ErrBadState = errors.New("session: live session with end time set")
	// ErrNotOwner means the acting user does not own the session.
	ErrNotOwner = errors.New("session: not owned by acting user")
)
