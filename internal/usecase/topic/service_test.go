package topic_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/domain/entity"
	topicUC "mdd-backend/internal/usecase/topic"
)

/*──────────────────── stub ────────────────────*/

type stubRepo struct {
	data   map[string]*entity.Topic
	nextID int
	err    error // forced failure
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.Topic{}}
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Topic, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}
func (s *stubRepo) GetMany(_ context.Context, ids []string) ([]*entity.Topic, error) {
	out := []*entity.Topic{}
	for _, id := range ids {
		if t, ok := s.data[id]; ok {
			out = append(out, t)
		}
	}
	return out, s.err
}
func (s *stubRepo) List(_ context.Context) ([]*entity.Topic, error) {
	out := []*entity.Topic{}
	for _, t := range s.data {
		out = append(out, t)
	}
	return out, s.err
}
func (s *stubRepo) Create(_ context.Context, t *entity.Topic) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.data {
		if existing.Name == t.Name {
			return entity.Duplicate("topic name already exists")
		}
	}
	s.nextID++
	t.ID = "t" + strconv.Itoa(s.nextID)
	s.data[t.ID] = t
	return nil
}
func (s *stubRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.NotFound("topic not found")
	}
	delete(s.data, id)
	return nil
}

/*──────────────────── tests ────────────────────*/

func TestService_Create(t *testing.T) {
	repo := newStub()
	svc := topicUC.Service{Repo: repo}

	got, err := svc.Create(context.Background(), topicUC.CreateInput{Name: " Go ", Description: "gophers"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Go", got.Name)
	assert.Equal(t, "gophers", got.Description)

	_, err = svc.Create(context.Background(), topicUC.CreateInput{Name: "Go"})
	assert.ErrorIs(t, err, entity.ErrDuplicate)
}

func TestService_Get(t *testing.T) {
	repo := newStub()
	svc := topicUC.Service{Repo: repo}
	created, err := svc.Create(context.Background(), topicUC.CreateInput{Name: "Go"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, topicUC.ErrTopicNotFound)
}

func TestService_List(t *testing.T) {
	svc := topicUC.Service{Repo: newStub()}

	topics, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestService_Delete(t *testing.T) {
	repo := newStub()
	svc := topicUC.Service{Repo: repo}
	created, err := svc.Create(context.Background(), topicUC.CreateInput{Name: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.data)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_RepositoryError(t *testing.T) {
	repo := newStub()
	repo.err = entity.WrapStore("List", errors.New("timeout"))
	svc := topicUC.Service{Repo: repo}

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, entity.ErrDatabase)

	_, err = svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, entity.ErrDatabase)

	err = svc.Delete(context.Background(), "x")
	assert.ErrorIs(t, err, entity.ErrDatabase)
}
