package postgres

import (
	"context"
	"database/sql"
	"testing"

	"coursedocs/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoursePostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCoursePostgres(db)
	ctx := context.Background()

	t.Run("get course", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM courses c JOIN levels l ON (.+) WHERE c.id = ?").
			WithArgs("course-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "semester"}).
				AddRow("course-1", "c101", "300", "first"))

		c, err := repo.GetCourse(ctx, "course-1")

		require.NoError(t, err)
		assert.Equal(t, &model.Course{ID: "course-1", Code: "c101", Level: "300", Semester: model.SemesterFirst}, c)
	})

	t.Run("missing course", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM courses").
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		c, err := repo.GetCourse(ctx, "nope")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, c)
	})

	t.Run("count departments", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM departments").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		n, err := repo.CountDepartments(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("course departments", func(t *testing.T) {
		mock.ExpectQuery("SELECT d.id, d.name FROM course_departments cd JOIN departments d (.+) WHERE cd.course_id = ?").
			WithArgs("course-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow("dep-a", "Computer Science").
				AddRow("dep-b", "Mathematics"))

		deps, err := repo.CourseDepartments(ctx, "course-1")

		require.NoError(t, err)
		assert.Equal(t, []model.Department{
			{ID: "dep-a", Name: "Computer Science"},
			{ID: "dep-b", Name: "Mathematics"},
		}, deps)
	})

	t.Run("no coverage", func(t *testing.T) {
		mock.ExpectQuery("SELECT d.id, d.name FROM course_departments").
			WithArgs("orphan").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		deps, err := repo.CourseDepartments(ctx, "orphan")

		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationPostgres_Notify(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO notifications \\(audience, message\\)").
		WithArgs("admin", "new file pending review - c101-note-7f3a2c1d.pdf").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewNotificationPostgres(db).Notify(context.Background(), model.AudienceAdmin, "new file pending review - c101-note-7f3a2c1d.pdf")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
