package application

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")

	// A user may hold at most one pending or approved application.
	ErrApplicationExists = errors.New("an active application already exists for this user")

	// Reviews are single-shot; a second review of the same application fails.
	ErrAlreadyReviewed = errors.New("application has already been reviewed")

	// Only listener accounts apply; creators already hold the role and
	// admins must never be demoted by an approval.
	ErrNotEligible = errors.New("only listener accounts can apply")
)
