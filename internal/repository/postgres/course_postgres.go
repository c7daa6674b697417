package postgres

import (
	"context"
	"database/sql"

	"coursedocs/internal/model"
	"coursedocs/internal/repository"
)

// CoursePostgres reads the course catalogue tables.
type CoursePostgres struct {
	db *sql.DB
}

func NewCoursePostgres(db *sql.DB) *CoursePostgres {
	return &CoursePostgres{db: db}
}

var _ repository.CourseReader = (*CoursePostgres)(nil)

func (r *CoursePostgres) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	const q = `
		SELECT c.id, c.code, l.name, c.semester
		FROM courses c
		JOIN levels l ON l.id = c.level_id
		WHERE c.id = $1
	`
	var c model.Course
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Code, &c.Level, &c.Semester); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CoursePostgres) CountDepartments(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM departments`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CourseDepartments lists the departments offering the course, by name.
func (r *CoursePostgres) CourseDepartments(ctx context.Context, courseID string) ([]model.Department, error) {
	const q = `
		SELECT d.id, d.name
		FROM course_departments cd
		JOIN departments d ON d.id = cd.department_id
		WHERE cd.course_id = $1
		ORDER BY d.name
	`
	rows, err := r.db.QueryContext(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
