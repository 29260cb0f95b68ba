package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdd-backend/internal/domain/entity"
	artUC "mdd-backend/internal/usecase/article"
	commentUC "mdd-backend/internal/usecase/comment"
	userUC "mdd-backend/internal/usecase/user"
)

func TestFromArticle(t *testing.T) {
	created := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	goTopic := &entity.Topic{ID: "t1", Name: "Go", Description: "gophers"}
	alice := &userUC.View{ID: "u1", Email: "a@example.com", Username: "alice",
		Subscriptions: []*entity.Topic{goTopic}, CreatedAt: created}

	got := FromArticle(&artUC.View{
		ID: "a1", Title: "Contexts", Content: "body", CreatedAt: created,
		Author: alice, Topic: goTopic,
		Comments: []*commentUC.View{
			{ID: "c1", Content: "nice", CreatedAt: created, Author: alice, ArticleID: "a1"},
			{ID: "c2", Content: "orphan", CreatedAt: created, ArticleID: "a1"},
		},
	})

	aliceDTO := &User{ID: "u1", Email: "a@example.com", Username: "alice",
		Subscriptions: []Topic{{ID: "t1", Name: "Go", Description: "gophers"}}, CreatedAt: created}
	want := &Article{
		ID: "a1", Title: "Contexts", Content: "body", CreatedAt: created,
		Author: aliceDTO,
		Topic:  &Topic{ID: "t1", Name: "Go", Description: "gophers"},
		Comments: []Comment{
			{ID: "c1", Content: "nice", CreatedAt: created, Author: aliceDTO, ArticleID: "a1"},
			{ID: "c2", Content: "orphan", CreatedAt: created, ArticleID: "a1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONShape(t *testing.T) {
	raw, err := json.Marshal(FromComment(&commentUC.View{ID: "c1", ArticleID: "a1"}))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "content", "createdAt", "author", "articleId"} {
		assert.Contains(t, m, key)
	}
	assert.Nil(t, m["author"])
}

func TestEmptyCollectionsEncodeAsArrays(t *testing.T) {
	raw, err := json.Marshal(FromUser(&userUC.View{ID: "u1"}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subscriptions":[]`)

	raw, err = json.Marshal(FromArticles(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
