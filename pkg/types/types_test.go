package types

import "testing"

// Group names must be a pure function of the connect-time parameters.
func TestGroupNaming(t *testing.T) {
	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{"chat room", ChatGroup("7"), "chat_7"},
		{"student context", ContextGroup(ContextStudent, "12"), "student_12"},
		{"teacher context", ContextGroup(ContextTeacher, "9"), "teacher_9"},
		{"course context", ContextGroup(ContextCourse, "3"), "course_3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, tc.got)
			}
		})
	}
}

func TestGroupNaming_Deterministic(t *testing.T) {
	if ChatGroup("7") != ChatGroup("7") {
		t.Error("Identical parameters must map to the same group")
	}
	if ContextGroup(ContextCourse, "3") != ContextGroup(ContextCourse, "3") {
		t.Error("Identical parameters must map to the same group")
	}
}

func TestIsValidContextType(t *testing.T) {
	valid := []string{ContextStudent, ContextTeacher, ContextCourse}
	for _, ct := range valid {
		if !IsValidContextType(ct) {
			t.Errorf("Expected %q to be valid", ct)
		}
	}

	invalid := []string{"", "admin", "Course", "students", "teacher_9"}
	for _, ct := range invalid {
		if IsValidContextType(ct) {
			t.Errorf("Expected %q to be invalid", ct)
		}
	}
}

func TestIsValidContextID(t *testing.T) {
	testCases := []struct {
		id    string
		valid bool
	}{
		{"1", true},
		{"042", true},
		{"123456", true},
		{"", false},
		{"abc", false},
		{"12a", false},
		{"-1", false},
		{"1 2", false},
	}

	for _, tc := range testCases {
		if got := IsValidContextID(tc.id); got != tc.valid {
			t.Errorf("IsValidContextID(%q): expected %v, got %v", tc.id, tc.valid, got)
		}
		if got := IsValidRoomID(tc.id); got != tc.valid {
			t.Errorf("IsValidRoomID(%q): expected %v, got %v", tc.id, tc.valid, got)
		}
	}
}

func TestEventTypes(t *testing.T) {
	testCases := []struct {
		event    Event
		expected string
	}{
		{ChatMessageEvent{}, EventTypeChatMessage},
		{CourseNameEvent{}, EventTypeCourseName},
		{StudentRemovedEvent{}, EventTypeStudentRemoved},
		{StudentEnrolledEvent{}, EventTypeStudentEnrolled},
		{UpdateMaterialEvent{}, EventTypeUpdateMaterial},
	}

	for _, tc := range testCases {
		if got := tc.event.EventType(); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}
}
