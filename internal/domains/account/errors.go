package account

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")

	// Conditional transition failures. Deliberately reported as not-found at
	// the HTTP boundary so callers cannot distinguish "absent" from "not in
	// the required state".
	ErrNotWaitlisted = errors.New("account is not waitlisted")
	ErrNotBanned     = errors.New("account is not banned")
)

// Service-level errors
var (
	ErrSelfBan              = errors.New("admins cannot ban themselves")
	ErrArtistNameNotAllowed = errors.New("artist name can only be set by creators")
)
