package ws

import "eduverse/pkg/types"

// Dispatcher converts a published event into the outbound wire shape of one
// endpoint kind. The second return value is false when the endpoint has no
// handler for the event's type; such events are dropped, never forwarded in a
// generic shape.
type Dispatcher interface {
	Dispatch(event types.Event) (interface{}, bool)
}

// chatOutbound is the wire shape of a forwarded chat message. CourseName is
// always present, defaulting to the empty string.
type chatOutbound struct {
	Message    string `json:"message"`
	Author     string `json:"author"`
	CourseName string `json:"course_name"`
}

type courseNameOutbound struct {
	CourseName string `json:"course_name"`
}

// ChatDispatcher serializes events for chat room connections.
type ChatDispatcher struct{}

func (ChatDispatcher) Dispatch(event types.Event) (interface{}, bool) {
	switch ev := event.(type) {
	case types.ChatMessageEvent:
		return chatOutbound{
			Message:    ev.Message,
			Author:     ev.Author,
			CourseName: ev.CourseName,
		}, true
	case types.CourseNameEvent:
		return courseNameOutbound{CourseName: ev.CourseName}, true
	default:
		return nil, false
	}
}

type studentRemovedOutbound struct {
	Type      string `json:"type"`
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

// RemovalDispatcher serializes events for remove-student connections. Fields
// are forwarded verbatim, without defaults.
type RemovalDispatcher struct{}

func (RemovalDispatcher) Dispatch(event types.Event) (interface{}, bool) {
	ev, ok := event.(types.StudentRemovedEvent)
	if !ok {
		return nil, false
	}
	return studentRemovedOutbound{
		Type:      types.EventTypeStudentRemoved,
		StudentID: ev.StudentID,
		CourseID:  ev.CourseID,
	}, true
}

type studentEnrolledOutbound struct {
	Type                 string `json:"type"`
	StudentName          string `json:"student_name"`
	CourseName           string `json:"course_name"`
	EnrolledStudentCount int    `json:"enrolled_student_count"`
	CourseID             int64  `json:"course_id"`
}

type updateMaterialOutbound struct {
	Type       string  `json:"type"`
	CourseName *string `json:"course_name"`
	CourseID   *int64  `json:"course_id"`
}

// NotificationDispatcher serializes events for notification connections.
// student_enrolled substitutes documented fallbacks for missing fields;
// update_material passes fields through untouched, absent ones as null.
type NotificationDispatcher struct{}

func (NotificationDispatcher) Dispatch(event types.Event) (interface{}, bool) {
	switch ev := event.(type) {
	case types.StudentEnrolledEvent:
		out := studentEnrolledOutbound{
			Type:                 types.EventTypeStudentEnrolled,
			StudentName:          "Unknown",
			CourseName:           "Unknown",
			EnrolledStudentCount: ev.EnrolledStudentCount,
			CourseID:             ev.CourseID,
		}
		// Fallbacks apply only when the publisher never set the field; an
		// explicit empty string goes out as-is.
		if ev.StudentName != nil {
			out.StudentName = *ev.StudentName
		}
		if ev.CourseName != nil {
			out.CourseName = *ev.CourseName
		}
		return out, true
	case types.UpdateMaterialEvent:
		return updateMaterialOutbound{
			Type:       types.EventTypeUpdateMaterial,
			CourseName: ev.CourseName,
			CourseID:   ev.CourseID,
		}, true
	default:
		return nil, false
	}
}
