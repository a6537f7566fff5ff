package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidName     = errors.New("invalid profile name")
	ErrFeedUnreachable = errors.New("feed could not be retrieved")
)
