// Package router holds the per-endpoint inbound message logic: each router
// validates a raw client frame, determines the event it maps to, and
// republishes that event to the connection's broadcast group. Routers never
// talk to sockets; delivery is entirely the channel layer's business.
package router

import (
	"context"
	"encoding/json"
	"fmt"

	"eduverse/pkg/interfaces"
	"eduverse/pkg/types"
)

// ChatRouter handles frames received on chat room connections.
//
// The two branches are independent: a frame carrying a non-empty
// course_name AND a type other than "course_name" produces two events, one
// per branch.
type ChatRouter struct {
	layer interfaces.ChannelLayer
}

// NewChatRouter creates a chat router publishing to layer.
func NewChatRouter(layer interfaces.ChannelLayer) *ChatRouter {
	return &ChatRouter{layer: layer}
}

// Route validates frame and republishes the resulting event(s) to group.
func (r *ChatRouter) Route(ctx context.Context, group string, frame []byte) error {
	var in types.ChatInbound
	if err := json.Unmarshal(frame, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	if in.CourseName != "" {
		ev := types.CourseNameEvent{CourseName: in.CourseName}
		if err := r.layer.GroupSend(ctx, group, ev); err != nil {
			return err
		}
	}

	if in.Type != types.MessageTypeCourseName {
		author := "System"
		if in.Author != nil {
			author = *in.Author
		}
		ev := types.ChatMessageEvent{
			Message: in.Message,
			Author:  author,
		}
		if err := r.layer.GroupSend(ctx, group, ev); err != nil {
			return err
		}
	}

	return nil
}

// RemovalRouter handles frames received on remove-student connections. Only
// remove_student frames with both identifiers present are republished;
// everything else is dropped.
type RemovalRouter struct {
	layer interfaces.ChannelLayer
}

// NewRemovalRouter creates a removal router publishing to layer.
func NewRemovalRouter(layer interfaces.ChannelLayer) *RemovalRouter {
	return &RemovalRouter{layer: layer}
}

// Route validates frame and republishes a student_removed event to group.
func (r *RemovalRouter) Route(ctx context.Context, group string, frame []byte) error {
	var in types.RemoveStudentInbound
	if err := json.Unmarshal(frame, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	if in.Type != types.MessageTypeRemoveStudent {
		return fmt.Errorf("%w: %q", ErrUnsupportedMessageType, in.Type)
	}
	if in.StudentID == "" || in.CourseID == "" {
		return ErrMissingRemovalFields
	}

	ev := types.StudentRemovedEvent{
		StudentID: in.StudentID,
		CourseID:  in.CourseID,
	}
	return r.layer.GroupSend(ctx, group, ev)
}

// NotificationRouter handles frames received on notification connections:
// student_enrolled and update_material, everything else dropped.
type NotificationRouter struct {
	layer interfaces.ChannelLayer
}

// NewNotificationRouter creates a notification router publishing to layer.
func NewNotificationRouter(layer interfaces.ChannelLayer) *NotificationRouter {
	return &NotificationRouter{layer: layer}
}

// Route validates frame and republishes the matching event to group.
func (r *NotificationRouter) Route(ctx context.Context, group string, frame []byte) error {
	var in types.NotificationInbound
	if err := json.Unmarshal(frame, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch in.Type {
	case types.MessageTypeStudentEnrolled:
		ev := types.StudentEnrolledEvent{
			StudentName:          in.StudentName,
			CourseName:           in.CourseName,
			EnrolledStudentCount: in.EnrolledStudentCount,
		}
		if in.CourseID != nil {
			ev.CourseID = *in.CourseID
		}
		return r.layer.GroupSend(ctx, group, ev)

	case types.MessageTypeUpdateMaterial:
		ev := types.UpdateMaterialEvent{
			CourseName: in.CourseName,
			CourseID:   in.CourseID,
		}
		return r.layer.GroupSend(ctx, group, ev)

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMessageType, in.Type)
	}
}
