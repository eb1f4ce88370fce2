package engagement

import "errors"

var (
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrTargetNotFound   = errors.New("target account not found")
	ErrLikeConflict     = errors.New("like changed concurrently")
)
