package channel

import "errors"

// Channel layer errors
var (
	ErrNilEvent = errors.New("event cannot be nil")
)
