package postgres_test

import (
	"context"
	"errors"
	"rental/infras/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactor(t *testing.T) (postgres.Transactor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{Write: sqlx.NewDb(db, "postgres")}

	return postgres.NewTransactor(conn), mock
}

func TestTransactor_WithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE cars").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := transactor.WithTx(context.Background(), func(tx *sqlx.Tx) error {
			_, err := tx.Exec("UPDATE cars SET availability = false")

			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the callback fails", func(t *testing.T) {
		transactor, mock := newTransactor(t)
		callbackErr := errors.New("vehicle is not available")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := transactor.WithTx(context.Background(), func(_ *sqlx.Tx) error {
			return callbackErr
		})

		assert.ErrorIs(t, err, callbackErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = transactor.WithTx(context.Background(), func(_ *sqlx.Tx) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err := transactor.WithTx(context.Background(), func(_ *sqlx.Tx) error {
			t.Fatal("callback must not run")

			return nil
		})

		assert.Error(t, err)
	})

	t.Run("commit failure", func(t *testing.T) {
		transactor, mock := newTransactor(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := transactor.WithTx(context.Background(), func(_ *sqlx.Tx) error {
			return nil
		})

		assert.ErrorContains(t, err, "failed to commit transaction")
	})
}
