package types

import "errors"

// Validation errors shared across components.
var (
	ErrInvalidContextType = errors.New("context type must be student, teacher or course")
	ErrInvalidContextID   = errors.New("context ID must be a numeric identifier")
	ErrInvalidRoomID      = errors.New("room ID must be a numeric identifier")
)
