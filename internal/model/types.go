package model

import "time"

// ObjectReference is a durable pointer to a stored blob, independent of any
// time-limited URL. It is the unit of deletion in the object store.
type ObjectReference struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func (r ObjectReference) IsZero() bool {
	return r.Key == ""
}

// AccessWindow is a time-limited download URL derived from an ObjectReference.
// It is replaced wholesale on refresh, never mutated in place.
type AccessWindow struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (w AccessWindow) IsZero() bool {
	return w.URL == ""
}

// ExpiresWithin reports whether the window is unset or expires within d of now.
func (w AccessWindow) ExpiresWithin(d time.Duration) bool {
	if w.IsZero() || w.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().Add(d).After(w.ExpiresAt)
}
