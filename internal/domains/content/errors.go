package content

import "errors"

var (
	// ErrContentNotFound also covers ownership misses: updating or deleting
	// someone else's row looks identical to the row not existing.
	ErrContentNotFound = errors.New("content not found")

	ErrMediaRequired = errors.New("primary media file is required")
)
