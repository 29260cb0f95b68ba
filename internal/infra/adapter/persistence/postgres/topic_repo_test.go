package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/infra/adapter/persistence/postgres"
)

var topicCols = []string{"id", "name", "description"}

func TestTopicRepo_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM topics`)).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(topicCols).AddRow("t1", "Go", "The Go language"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM topics`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(topicCols))

	got, err := repo.Get(context.Background(), "t1")
	require.NoError(t, err)
	if diff := cmp.Diff(&entity.Topic{ID: "t1", Name: "Go", Description: "The Go language"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	got, err = repo.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTopicRepo_GetMany_KeepsRequestedOrderAndSkipsUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(topicCols).
			AddRow("t1", "Go", "").
			AddRow("t3", "Rust", ""))

	got, err := repo.GetMany(context.Background(), []string{"t3", "gone", "t1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t3", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)
}

func TestTopicRepo_GetMany_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	got, err := repo.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows(topicCols).
			AddRow("t1", "Go", "").
			AddRow("t2", "Java", ""))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTopicRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO topics (name, description)`)).
		WithArgs("Go", "The Go language").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t1"))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO topics (name, description)`)).
		WithArgs("Go", "again").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "topics_name_key"})

	topic := &entity.Topic{Name: "Go", Description: "The Go language"}
	require.NoError(t, repo.Create(context.Background(), topic))
	assert.Equal(t, "t1", topic.ID)

	err := repo.Create(context.Background(), &entity.Topic{Name: "Go", Description: "again"})
	assert.ErrorIs(t, err, entity.ErrDuplicate)
	assert.ErrorContains(t, err, "topic name already exists")
}

func TestTopicRepo_Delete_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewTopicRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM topics WHERE id = $1`)).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), entity.ErrNotFound)
}
