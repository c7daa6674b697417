package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursedocs/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

const createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// steps run in order; each one is applied at most once and recorded in schema_migrations.
// Append new steps, never edit applied ones.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_levels",
		SQL: `CREATE TABLE IF NOT EXISTS levels (
  id   UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  id   UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_courses",
		SQL: `CREATE TABLE IF NOT EXISTS courses (
  id       UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  code     TEXT NOT NULL UNIQUE,
  level_id UUID NOT NULL REFERENCES levels (id),
  semester TEXT NOT NULL
);`,
	},
	{
		Name: "create_table_course_departments",
		SQL: `CREATE TABLE IF NOT EXISTS course_departments (
  course_id     UUID NOT NULL REFERENCES courses (id) ON DELETE CASCADE,
  department_id UUID NOT NULL REFERENCES departments (id) ON DELETE CASCADE,
  PRIMARY KEY (course_id, department_id)
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  original_name    TEXT        NOT NULL,
  canonical_name   TEXT        NOT NULL,
  extension        TEXT        NOT NULL,
  content_type     TEXT        NOT NULL,
  size             BIGINT      NOT NULL CHECK (size > 0),
  page_count       INTEGER     NOT NULL DEFAULT 0,
  category         TEXT        NOT NULL,
  term_tag         TEXT        NOT NULL DEFAULT '',
  status           TEXT        NOT NULL DEFAULT 'pending'
                               CHECK (status IN ('pending', 'approved', 'rejected')),
  rejection_reason TEXT        NOT NULL DEFAULT '',
  staging_path     TEXT        NOT NULL UNIQUE,
  permanent_path   TEXT        NOT NULL DEFAULT '',
  course_id        UUID        NOT NULL REFERENCES courses (id),
  uploader_id      TEXT        NOT NULL,
  reviewer_id      TEXT        NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_documents_course_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_course_id ON documents (course_id, status);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  audience   TEXT        NOT NULL,
  message    TEXT        NOT NULL,
  read_at    TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated applies every step not yet recorded in schema_migrations, each in its own transaction.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	start := time.Now()
	log = log.With("component", "database")
	log.Info("db migration check")

	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		log.Error("db migration failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("create migration ledger: %w", err)
	}

	applied := 0
	for _, step := range steps {
		var done bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, step.Name).Scan(&done)
		if err != nil {
			log.Error("db migration failed", "migration_step", step.Name, "error", err)
			return fmt.Errorf("check migration step %s: %w", step.Name, err)
		}
		if done {
			continue
		}

		stepStart := time.Now()
		if err := apply(ctx, db, step); err != nil {
			log.Error("db migration failed",
				"migration_step", step.Name,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		applied++
		log.Info("db migration step", "migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	if applied == 0 {
		log.Info("schema up to date, skipping migration", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}
	log.Info("db migration success", "steps_applied", applied, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func apply(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
