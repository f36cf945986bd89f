package ingest

import "errors"

var (
	// ErrRecordingNotFound means the raw recording path does not exist.
	ErrRecordingNotFound = errors.New("ingest: recording file not found")
	// ErrSessionNotFound means no session owns the given stream key.
	ErrSessionNotFound = errors.New("ingest: session not found")
	// ErrSessionUnowned means the session carries no owner to attribute the VOD to.
	ErrSessionUnowned = errors.New("ingest: session has no owner")
)
