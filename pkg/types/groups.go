package types

import "regexp"

// Group names are a pure function of connect-time parameters. Two connections
// opened with identical parameters always land in the same group, which is
// what makes fan-out work without a central directory.

var contextIDRegex = regexp.MustCompile(`^[0-9]+$`)

// ChatGroup returns the broadcast group for a chat room.
func ChatGroup(roomID string) string {
	return "chat_" + roomID
}

// ContextGroup returns the broadcast group scoped to a student, teacher or
// course entity.
func ContextGroup(contextType, contextID string) string {
	return contextType + "_" + contextID
}

// IsValidContextType reports whether s names a known group scope.
func IsValidContextType(s string) bool {
	switch s {
	case ContextStudent, ContextTeacher, ContextCourse:
		return true
	default:
		return false
	}
}

// IsValidContextID reports whether s is a well-formed entity identifier.
// Identifiers are numeric database keys.
func IsValidContextID(s string) bool {
	return contextIDRegex.MatchString(s)
}

// IsValidRoomID reports whether s is a well-formed chat room identifier.
// Rooms are keyed by course, so the same numeric format applies.
func IsValidRoomID(s string) bool {
	return contextIDRegex.MatchString(s)
}
