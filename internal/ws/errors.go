package ws

import "errors"

// Connection-related errors
var (
	ErrConnectionClosed   = errors.New("connection closed")
	ErrQueueFull          = errors.New("write queue full, message dropped")
	ErrInvalidJSON        = errors.New("invalid JSON data")
	ErrUnhandledEventType = errors.New("no handler for event type on this endpoint")
)
