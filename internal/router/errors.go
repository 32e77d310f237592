package router

import "errors"

// Protocol errors. All of them are scoped to a single frame: the caller logs
// a warning and keeps the connection open.
var (
	ErrMalformedFrame         = errors.New("malformed JSON frame")
	ErrUnsupportedMessageType = errors.New("unsupported message type")
	ErrMissingRemovalFields   = errors.New("remove_student requires student_id and course_id")
)
