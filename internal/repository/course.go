package repository

import (
	"context"

	"coursedocs/internal/model"
)

// CourseReader reads the course catalogue. Documents are filed against courses but never modify them.
type CourseReader interface {
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CountDepartments(ctx context.Context) (int, error)
	CourseDepartments(ctx context.Context, courseID string) ([]model.Department, error)
}

// Notifier records a message for an audience.
type Notifier interface {
	Notify(ctx context.Context, audience model.Audience, message string) error
}
