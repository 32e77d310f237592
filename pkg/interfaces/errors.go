package interfaces

import "errors"

// Common interface errors used across components
var (
	ErrRoomIDNotFound = errors.New("room ID not found")
)
