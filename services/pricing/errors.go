package pricing

import "errors"

var (
	ErrNoSessions          = errors.New("cannot price an empty session list")
	ErrBadParticipantCount = errors.New("participant count must be at least 1")
	ErrBadTotal            = errors.New("total price must be positive")
)
