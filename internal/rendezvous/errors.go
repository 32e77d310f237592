package rendezvous

import "errors"

// Store errors
var (
	ErrStoreClosed = errors.New("rendezvous store is closed")
)
