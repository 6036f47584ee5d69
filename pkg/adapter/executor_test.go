package adapter_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
	"github.com/leapstack-labs/quill/pkg/qb"
)

type mockAdapter struct {
	adapter.BaseSQLAdapter
}

func (m *mockAdapter) Connect(_ context.Context, _ adapter.Config) error { return nil }

func (m *mockAdapter) Dialect() *dialect.Dialect { return dialect.Default() }

func newMockAdapter(t *testing.T) (*mockAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	a := &mockAdapter{}
	a.DB = db
	return a, mock
}

func TestExecutorQuery(t *testing.T) {
	a, mock := newMockAdapter(t)
	b := qb.New(a.Dialect())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "name" FROM "users" WHERE "status" = ?`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "ada").
			AddRow(2, "grace"))

	ex := adapter.NewExecutor(a, nil)
	rows, err := ex.Query(context.Background(), b.Select("id", "name").From("users").Where("status", "active"))
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		var name string
		require.NoError(t, rows.Scan(&id, &name))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorExec(t *testing.T) {
	a, mock := newMockAdapter(t)
	b := qb.New(a.Dialect())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "status" = ? WHERE "id" = ?`)).
		WithArgs("archived", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ex := adapter.NewExecutor(a, nil)
	affected, err := ex.Exec(context.Background(),
		b.Update("users").Set(qb.M{"status": "archived"}).Where("id", 7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorRebindsBetweenRuns(t *testing.T) {
	a, mock := newMockAdapter(t)
	b := qb.New(a.Dialect())

	status := qb.Param("active")
	stmt := b.Select("id").From("users").Where("status", status)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "users" WHERE "status" = ?`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "users" WHERE "status" = ?`)).
		WithArgs("archived").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ex := adapter.NewExecutor(a, nil)
	rows, err := ex.Query(context.Background(), stmt)
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	status.Set("archived")
	rows, err = ex.Query(context.Background(), stmt)
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorPropagatesAdapterErrors(t *testing.T) {
	a, mock := newMockAdapter(t)
	b := qb.New(a.Dialect())

	sentinel := errors.New("deadlock detected")
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sessions"`)).
		WillReturnError(sentinel)

	ex := adapter.NewExecutor(a, nil)
	_, err := ex.Exec(context.Background(), b.Delete("sessions"))
	require.ErrorIs(t, err, sentinel)
	// The adapter's own message is all the caller sees; no executor framing.
	assert.Equal(t, "failed to execute statement: deadlock detected", err.Error())
}

func TestExecutorBuildError(t *testing.T) {
	a, mock := newMockAdapter(t)
	b := qb.New(a.Dialect())

	ex := adapter.NewExecutor(a, nil)
	_, err := ex.Query(context.Background(), b.Select().From("users").Where("id", "~", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build statement")
	assert.NoError(t, mock.ExpectationsWereMet())
}
