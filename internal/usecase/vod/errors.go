package vod

import "errors"

var (
	// ErrVODNotFound means no VOD exists for the given id.
	ErrVODNotFound = errors.New("vod: not found")
)
