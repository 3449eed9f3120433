package repository_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	otelMocks "workforce/infras/otel/mocks"
	"workforce/infras/postgres"
	"workforce/shared"
	"workforce/shared/constant"
	"workforce/shared/dto"
	"workforce/shared/failure"
	"workforce/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetTable = "widgets"

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func newRepo(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[widget]("widget", widgetTable, "id", &postgres.Connection{Read: conn, Write: conn}, otelMocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return shared.FilterByID(id, "id", widgetTable)
}

func TestInsertMapsConstraintErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     pq.ErrorCode
		wantCode int
	}{
		{name: "unique", code: constant.PqErrorCodeUniqueViolation, wantCode: http.StatusConflict},
		{name: "foreign key", code: constant.PqErrorCodeFkViolation, wantCode: http.StatusNotFound},
		{name: "check", code: constant.PqErrorCodeCheckViolation, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name) VALUES ($1, $2)")).
				WithArgs("w-1", "bolt").
				WillReturnError(&pq.Error{Code: tt.code, Constraint: "widgets_check"})

			err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "bolt"})

			require.Error(t, err)
			assert.True(t, failure.Is(err, tt.wantCode), err.Error())
		})
	}
}

func TestInsertWrapsUnknownErrors(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO widgets").WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "bolt"})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("w-1", "bolt"))

	got, err := repo.Get(context.Background(), byID("w-1"))

	require.NoError(t, err)
	assert.Equal(t, widget{ID: "w-1", Name: "bolt"}, got)
}

func TestGetMissingRowIsZeroValue(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare("SELECT").
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.Get(context.Background(), byID("w-404"))

	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestExist(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), byID("w-1"))

	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET label = $1, name = $2")).
		WithArgs("x", "nut", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), map[string]any{"name": "nut", "label": "x"}, byID("w-1"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.Update(context.Background(), map[string]any{}, byID("w-1"))
	assert.Error(t, err)

	_, err = repo.Update(context.Background(), map[string]any{"name": "nut"}, dto.FilterGroup{})
	assert.Error(t, err)
}

func TestDeleteStillReferenced(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM widgets")).
		WithArgs("w-1").
		WillReturnError(&pq.Error{Code: constant.PqErrorCodeFkViolation})

	_, err := repo.Delete(context.Background(), byID("w-1"))

	require.Error(t, err)
	assert.True(t, failure.Is(err, http.StatusConflict))
}

func TestDeleteReportsAffectedRows(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM widgets")).
		WithArgs("w-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), byID("w-404"))

	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestMapErrorPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")

	assert.Equal(t, plain, repository.MapError(plain, "widget"))
	assert.Equal(t, plain, repository.MapDeleteError(plain, "widget"))
}
