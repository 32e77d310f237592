package types

// Context types a notification or removal group may be scoped to.
const (
	ContextStudent = "student"
	ContextTeacher = "teacher"
	ContextCourse  = "course"
)

// Inbound message type tags. Chat frames carry no mandatory tag; any frame
// whose type is not "course_name" is treated as a plain chat message.
const (
	MessageTypeCourseName      = "course_name"
	MessageTypeRemoveStudent   = "remove_student"
	MessageTypeStudentEnrolled = "student_enrolled"
	MessageTypeUpdateMaterial  = "update_material"
)

// Event type discriminators for published events.
const (
	EventTypeChatMessage     = "chat_message"
	EventTypeCourseName      = "course_name"
	EventTypeStudentRemoved  = "student_removed"
	EventTypeStudentEnrolled = "student_enrolled"
	EventTypeUpdateMaterial  = "update_material"
)

// Event is a typed record published to a broadcast group. The concrete
// variants form a closed set; anything outside it never enters the channel
// layer.
type Event interface {
	EventType() string
}

// ChatMessageEvent is the default chat branch: a message with its author.
// CourseName rides along so clients can render the room header; it is empty
// unless the publisher supplied one.
type ChatMessageEvent struct {
	Message    string `json:"message"`
	Author     string `json:"author"`
	CourseName string `json:"course_name"`
}

func (ChatMessageEvent) EventType() string { return EventTypeChatMessage }

// CourseNameEvent is the informational side-channel of the chat endpoint.
type CourseNameEvent struct {
	CourseName string `json:"course_name"`
}

func (CourseNameEvent) EventType() string { return EventTypeCourseName }

// StudentRemovedEvent announces that a student was removed from a course.
// Fields are forwarded verbatim; no defaults are applied on dispatch.
type StudentRemovedEvent struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

func (StudentRemovedEvent) EventType() string { return EventTypeStudentRemoved }

// StudentEnrolledEvent announces a new enrollment to the course's teacher.
// Name fields are pointers so dispatch can tell an absent field, which falls
// back to "Unknown", from an explicit empty string, which is echoed as-is.
// The numeric fields zero-default either way.
type StudentEnrolledEvent struct {
	StudentName          *string `json:"student_name"`
	CourseName           *string `json:"course_name"`
	EnrolledStudentCount int     `json:"enrolled_student_count"`
	CourseID             int64   `json:"course_id"`
}

func (StudentEnrolledEvent) EventType() string { return EventTypeStudentEnrolled }

// UpdateMaterialEvent announces that course materials changed. Pointer fields
// preserve absence: a field the publisher never set is serialized as null
// rather than substituted.
type UpdateMaterialEvent struct {
	CourseName *string `json:"course_name"`
	CourseID   *int64  `json:"course_id"`
}

func (UpdateMaterialEvent) EventType() string { return EventTypeUpdateMaterial }

// ChatInbound is the wire shape received on a chat connection. Author is a
// pointer so an absent key can be told apart from an explicit empty string;
// the router substitutes "System" only when the key is absent.
type ChatInbound struct {
	Type       string  `json:"type"`
	CourseName string  `json:"course_name"`
	Message    string  `json:"message"`
	Author     *string `json:"author"`
}

// RemoveStudentInbound is the wire shape received on a removal connection.
type RemoveStudentInbound struct {
	Type      string `json:"type"`
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

// NotificationInbound is the superset wire shape received on a notification
// connection; which fields matter depends on Type.
type NotificationInbound struct {
	Type                 string  `json:"type"`
	StudentName          *string `json:"student_name"`
	CourseName           *string `json:"course_name"`
	EnrolledStudentCount int     `json:"enrolled_student_count"`
	CourseID             *int64  `json:"course_id"`
}
