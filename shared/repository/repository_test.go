package repository_test

import (
	"context"
	"errors"
	"regexp"
	"rental/infras/otel/mocks"
	"rental/infras/postgres"
	"rental/shared/dto"
	"rental/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicleRow struct {
	ID           string `db:"id"`
	Availability bool   `db:"availability"`
}

func newRepository(t *testing.T) (repository.Repository[vehicleRow], *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[vehicleRow]("car", "cars", "id", conn, mocks.NewOtel()), sqlxDB, mock
}

func reserveFilter(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "cars"},
			dto.Filter{ArgName: "current_availability", Field: "availability", Value: true, Operator: dto.FilterOperatorEq, Table: "cars"},
		},
	}
}

func TestRepository_UpdateTxCount(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE cars SET availability = $1, modified_by = $2") +
		`\s+` + regexp.QuoteMeta("WHERE (cars.id = $3 AND cars.availability = $4)")

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		expected int64
		wantErr  bool
	}{
		{
			name: "reserves an available vehicle",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WithArgs(false, "customer-1", "car-1", true).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expected: 1,
		},
		{
			name: "lost the race",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WithArgs(false, "customer-1", "car-1", true).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: 0,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, db, mock := newRepository(t)

			mock.ExpectBegin()
			tt.setup(mock)

			tx, err := db.Beginx()
			require.NoError(t, err)

			affected, err := repo.UpdateTxCount(context.Background(), tx, map[string]any{
				"modified_by":  "customer-1",
				"availability": false,
			}, reserveFilter("car-1"))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, affected)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateRequiresFilter(t *testing.T) {
	repo, _, mock := newRepository(t)

	err := repo.Update(context.Background(), map[string]any{"availability": true}, dto.FilterGroup{})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUpdateTx(t *testing.T) {
	query := regexp.QuoteMeta("SELECT cars.id, cars.availability FROM cars") +
		`\s+` + regexp.QuoteMeta("WHERE (cars.id = $1)") + `\s+FOR UPDATE`

	t.Run("locks the row", func(t *testing.T) {
		repo, db, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs("car-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "availability"}).AddRow("car-1", true))

		tx, err := db.Beginx()
		require.NoError(t, err)

		row, err := repo.GetForUpdateTx(context.Background(), tx, dto.FilterGroup{
			Filters: []any{dto.Filter{Field: "id", Value: "car-1", Operator: dto.FilterOperatorEq, Table: "cars"}},
		})

		require.NoError(t, err)
		assert.Equal(t, vehicleRow{ID: "car-1", Availability: true}, row)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row yields zero value", func(t *testing.T) {
		repo, db, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs("car-404").
			WillReturnRows(sqlmock.NewRows([]string{"id", "availability"}))

		tx, err := db.Beginx()
		require.NoError(t, err)

		row, err := repo.GetForUpdateTx(context.Background(), tx, dto.FilterGroup{
			Filters: []any{dto.Filter{Field: "id", Value: "car-404", Operator: dto.FilterOperatorEq, Table: "cars"}},
		})

		require.NoError(t, err)
		assert.Empty(t, row.ID)
	})

	t.Run("requires a filter", func(t *testing.T) {
		repo, db, mock := newRepository(t)

		mock.ExpectBegin()

		tx, err := db.Beginx()
		require.NoError(t, err)

		_, err = repo.GetForUpdateTx(context.Background(), tx, dto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRepository_Get(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT cars.id, cars.availability FROM cars")).
		ExpectQuery().
		WithArgs("car-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "availability"}).AddRow("car-1", false))

	row, err := repo.Get(context.Background(), dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "id", Value: "car-1", Operator: dto.FilterOperatorEq, Table: "cars"}},
	})

	require.NoError(t, err)
	assert.False(t, row.Availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllOrdering(t *testing.T) {
	tests := []struct {
		name    string
		params  dto.QueryParams
		pattern string
	}{
		{
			name:    "known column is qualified",
			params:  dto.QueryParams{Page: 2, Limit: 5, SortBy: "availability", SortDir: dto.SortDirAsc},
			pattern: `FROM cars\s+ORDER BY cars\.availability ASC LIMIT \$1 OFFSET \$2`,
		},
		{
			name:    "unknown column is dropped",
			params:  dto.QueryParams{Page: 2, Limit: 5, SortBy: "id; DROP TABLE cars", SortDir: dto.SortDirDesc},
			pattern: `FROM cars\s+LIMIT \$1 OFFSET \$2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepository(t)

			mock.ExpectPrepare(tt.pattern).
				ExpectQuery().
				WithArgs(5, 5).
				WillReturnRows(sqlmock.NewRows([]string{"id", "availability"}).AddRow("car-6", true))

			rows, err := repo.GetAll(context.Background(), tt.params, dto.FilterGroup{})

			require.NoError(t, err)
			assert.Len(t, rows, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_InsertConstraintViolations(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO cars (id, availability) VALUES ($1, $2)")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505", Constraint: "cars_pkey"}, wantErr: repository.ErrDuplicate},
		{name: "foreign key violation", err: &pq.Error{Code: "23503", Constraint: "bookings_vehicle_fk"}, wantErr: repository.ErrReferenced},
		{name: "malformed uuid", err: &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}, wantErr: repository.ErrMalformedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepository(t)

			mock.ExpectExec(insert).WithArgs("car-1", true).WillReturnError(tt.err)

			err := repo.Insert(context.Background(), vehicleRow{ID: "car-1", Availability: true})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("other driver errors pass through", func(t *testing.T) {
		repo, _, mock := newRepository(t)
		driverErr := errors.New("connection reset")

		mock.ExpectExec(insert).WillReturnError(driverErr)

		err := repo.Insert(context.Background(), vehicleRow{ID: "car-1"})

		assert.ErrorIs(t, err, driverErr)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
	})
}
