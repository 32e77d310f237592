// Package notify is the entry point for HTTP collaborators: view logic that
// already owns a fully-formed event payload and needs it fanned out to the
// right group. The service only picks target groups; validation of the
// payload happened upstream.
package notify

import (
	"context"
	"fmt"
	"log"

	"eduverse/pkg/interfaces"
	"eduverse/pkg/types"
)

// Service publishes collaborator-triggered events into the channel layer.
type Service struct {
	layer interfaces.ChannelLayer
}

// NewService creates a notifier publishing to layer.
func NewService(layer interfaces.ChannelLayer) *Service {
	return &Service{layer: layer}
}

// StudentEnrolled announces a new enrollment to the course teacher's group.
func (s *Service) StudentEnrolled(ctx context.Context, teacherID string, ev types.StudentEnrolledEvent) error {
	group := types.ContextGroup(types.ContextTeacher, teacherID)
	if err := s.layer.GroupSend(ctx, group, ev); err != nil {
		return fmt.Errorf("failed to publish enrollment to %s: %w", group, err)
	}
	return nil
}

// StudentRemoved announces a removal to the removed student's group.
func (s *Service) StudentRemoved(ctx context.Context, ev types.StudentRemovedEvent) error {
	group := types.ContextGroup(types.ContextStudent, ev.StudentID)
	if err := s.layer.GroupSend(ctx, group, ev); err != nil {
		return fmt.Errorf("failed to publish removal to %s: %w", group, err)
	}
	return nil
}

// MaterialUpdated announces a material change to the course group and to each
// enrolled student's group. Delivery is fire-and-forget: a failed student
// group does not stop the remaining fan-out.
func (s *Service) MaterialUpdated(ctx context.Context, courseID string, studentIDs []string, ev types.UpdateMaterialEvent) error {
	courseGroup := types.ContextGroup(types.ContextCourse, courseID)
	if err := s.layer.GroupSend(ctx, courseGroup, ev); err != nil {
		return fmt.Errorf("failed to publish material update to %s: %w", courseGroup, err)
	}

	for _, studentID := range studentIDs {
		group := types.ContextGroup(types.ContextStudent, studentID)
		if err := s.layer.GroupSend(ctx, group, ev); err != nil {
			log.Printf("notify: material update not published to %s: %v", group, err)
		}
	}

	return nil
}
