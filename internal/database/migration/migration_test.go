package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"coursedocs/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ledgerSQL = regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")
	checkSQL  = regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)")
	recordSQL = regexp.QuoteMeta("INSERT INTO schema_migrations (name) VALUES ($1)")
)

func TestEnsureMigrated_FreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(ledgerSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	for _, step := range steps {
		mock.ExpectQuery(checkSQL).WithArgs(step.Name).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(recordSQL).WithArgs(step.Name).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	var buf bytes.Buffer
	err = EnsureMigrated(context.Background(), db, logger.NewWithWriter(&buf))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), "db migration success")
}

func TestEnsureMigrated_UpToDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(ledgerSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	for _, step := range steps {
		mock.ExpectQuery(checkSQL).WithArgs(step.Name).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	var buf bytes.Buffer
	err = EnsureMigrated(context.Background(), db, logger.NewWithWriter(&buf))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), "schema up to date")
}

func TestEnsureMigrated_StepFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	first := steps[0]
	mock.ExpectExec(ledgerSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(checkSQL).WithArgs(first.Name).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(first.SQL)).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	var buf bytes.Buffer
	err = EnsureMigrated(context.Background(), db, logger.NewWithWriter(&buf))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), first.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestEnsureMigrated_LedgerFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(ledgerSQL).WillReturnError(errors.New("connection reset"))

	err = EnsureMigrated(context.Background(), db, logger.Nop())
	assert.ErrorContains(t, err, "create migration ledger")
	assert.NoError(t, mock.ExpectationsWereMet())
}
