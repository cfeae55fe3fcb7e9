package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	errBody := errors.New("insert failed")

	tests := []struct {
		name   string
		expect func(sqlmock.Sqlmock)
		fn     TxFn
		check  func(t *testing.T, err error)
	}{
		{
			name: "commits",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("INSERT INTO books").WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO books (id) VALUES ($1)", 1)
				return err
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name: "returns body error unchanged after rollback",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn: func(context.Context, *sql.Tx) error { return errBody },
			check: func(t *testing.T, err error) {
				assert.Same(t, errBody, err)
			},
		},
		{
			name: "keeps domain kind of body error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn: func(context.Context, *sql.Tx) error { return ErrNoteNotFound },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name: "begin failure",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			fn: func(context.Context, *sql.Tx) error { return errBody },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTransactionFailed)
				assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
				assert.NotErrorIs(t, err, errBody, "body must not run")
			},
		},
		{
			name: "commit failure",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn: func(context.Context, *sql.Tx) error { return nil },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTransactionFailed)
			},
		},
		{
			name: "rollback failure keeps original error",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback().WillReturnError(errors.New("connection lost"))
			},
			fn: func(context.Context, *sql.Tx) error { return ErrCardNotFound },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrCardNotFound)
				assert.Contains(t, err.Error(), "connection lost")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			tc.expect(mock)

			err := RunInTransaction(context.Background(), db, tc.fn)

			tc.check(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransactionPanic(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
