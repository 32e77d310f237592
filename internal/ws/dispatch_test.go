package ws

import (
	"encoding/json"
	"testing"

	"eduverse/pkg/types"
)

func marshalPayload(t *testing.T, d Dispatcher, ev types.Event) string {
	t.Helper()
	payload, ok := d.Dispatch(ev)
	if !ok {
		t.Fatalf("Dispatcher dropped event %T", ev)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return string(data)
}

func TestChatDispatcher_WireShapes(t *testing.T) {
	d := ChatDispatcher{}

	got := marshalPayload(t, d, types.ChatMessageEvent{Message: "hi", Author: "alice"})
	want := `{"message":"hi","author":"alice","course_name":""}`
	if got != want {
		t.Errorf("chat_message wire shape:\n got %s\nwant %s", got, want)
	}

	got = marshalPayload(t, d, types.CourseNameEvent{CourseName: "Algebra"})
	want = `{"course_name":"Algebra"}`
	if got != want {
		t.Errorf("course_name wire shape:\n got %s\nwant %s", got, want)
	}
}

func TestChatDispatcher_DropsForeignEvents(t *testing.T) {
	d := ChatDispatcher{}
	if _, ok := d.Dispatch(types.StudentRemovedEvent{StudentID: "1"}); ok {
		t.Error("Chat endpoint must not forward student_removed events")
	}
}

func TestRemovalDispatcher_ForwardsVerbatim(t *testing.T) {
	d := RemovalDispatcher{}

	got := marshalPayload(t, d, types.StudentRemovedEvent{StudentID: "12", CourseID: "3"})
	want := `{"type":"student_removed","student_id":"12","course_id":"3"}`
	if got != want {
		t.Errorf("student_removed wire shape:\n got %s\nwant %s", got, want)
	}

	if _, ok := d.Dispatch(types.ChatMessageEvent{}); ok {
		t.Error("Removal endpoint must not forward chat events")
	}
}

func TestNotificationDispatcher_EnrolledDefaults(t *testing.T) {
	d := NotificationDispatcher{}

	alice := "Alice Smith"
	algebra := "Algebra"
	empty := ""

	testCases := []struct {
		name string
		ev   types.StudentEnrolledEvent
		want string
	}{
		{
			"all fields present",
			types.StudentEnrolledEvent{StudentName: &alice, CourseName: &algebra, EnrolledStudentCount: 5, CourseID: 3},
			`{"type":"student_enrolled","student_name":"Alice Smith","course_name":"Algebra","enrolled_student_count":5,"course_id":3}`,
		},
		{
			"all fields missing",
			types.StudentEnrolledEvent{},
			`{"type":"student_enrolled","student_name":"Unknown","course_name":"Unknown","enrolled_student_count":0,"course_id":0}`,
		},
		{
			// Only absent fields fall back; an explicit empty string is
			// echoed, not rewritten to Unknown.
			"explicit empty name",
			types.StudentEnrolledEvent{StudentName: &empty, CourseName: &algebra},
			`{"type":"student_enrolled","student_name":"","course_name":"Algebra","enrolled_student_count":0,"course_id":0}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := marshalPayload(t, d, tc.ev)
			if got != tc.want {
				t.Errorf("student_enrolled wire shape:\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

// update_material applies no substitution: fields the publisher never set go
// out as null.
func TestNotificationDispatcher_MaterialPassthrough(t *testing.T) {
	d := NotificationDispatcher{}

	name := "Algebra"
	id := int64(3)
	got := marshalPayload(t, d, types.UpdateMaterialEvent{CourseName: &name, CourseID: &id})
	want := `{"type":"update_material","course_name":"Algebra","course_id":3}`
	if got != want {
		t.Errorf("update_material wire shape:\n got %s\nwant %s", got, want)
	}

	got = marshalPayload(t, d, types.UpdateMaterialEvent{})
	want = `{"type":"update_material","course_name":null,"course_id":null}`
	if got != want {
		t.Errorf("update_material absent fields:\n got %s\nwant %s", got, want)
	}
}
