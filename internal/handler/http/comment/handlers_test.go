package comment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/comment"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/infra/adapter/persistence/memory"
	commentUC "mdd-backend/internal/usecase/comment"
	userUC "mdd-backend/internal/usecase/user"
)

type emailTokens struct{}

func (emailTokens) Verify(token string) (string, error) { return token, nil }

type fixture struct {
	mux      *http.ServeMux
	users    *userUC.Service
	articles []*entity.Article
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	users := &userUC.Service{Users: store.Users(), Topics: store.Topics(), BcryptCost: bcrypt.MinCost}
	svc := &commentUC.Service{Comments: store.Comments(), Articles: store.Articles(), Users: users}

	alice, err := users.Create(ctx, userUC.CreateInput{Email: "alice@example.com", Username: "alice", Password: "pw"})
	require.NoError(t, err)
	topic := &entity.Topic{Name: "Go"}
	require.NoError(t, store.Topics().Create(ctx, topic))

	f := &fixture{users: users}
	for _, title := range []string{"one", "two"} {
		a := &entity.Article{Title: title, Content: "c", AuthorID: alice.ID, TopicID: topic.ID}
		require.NoError(t, store.Articles().Create(ctx, a))
		f.articles = append(f.articles, a)
	}

	f.mux = http.NewServeMux()
	comment.Register(f.mux, svc, emailTokens{})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer alice@example.com")
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, r)
	return rr
}

func (f *fixture) post(t *testing.T, articleID, content string) dto.Comment {
	t.Helper()
	rr := f.do(http.MethodPost, "/api/comments?articleId="+articleID, `{"content":"`+content+`"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c dto.Comment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	return c
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []dto.Comment {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var list []dto.Comment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	return list
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)
	c := f.post(t, f.articles[0].ID, "first!")

	assert.Equal(t, f.articles[0].ID, c.ArticleID)
	require.NotNil(t, c.Author)
	assert.Equal(t, "alice", c.Author.Username)

	rr := f.do(http.MethodGet, "/api/comments/"+c.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.Comment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "first!", got.Content)
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"no article", "/api/comments", `{"content":"x"}`, http.StatusBadRequest},
		{"unknown article", "/api/comments?articleId=missing", `{"content":"x"}`, http.StatusNotFound},
		{"empty content", "/api/comments?articleId=" + f.articles[0].ID, `{"content":""}`, http.StatusBadRequest},
		{"blank content", "/api/comments?articleId=" + f.articles[0].ID, `{"content":"  \t "}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(http.MethodPost, tt.path, tt.body).Code)
		})
	}

	rr := f.do(http.MethodPost, "/api/comments", `{"content":"x"}`)
	var body respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Article is required", body.FieldErrors["articleId"])
}

func TestList(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, decodeList(t, f.do(http.MethodGet, "/api/comments", "")))

	f.post(t, f.articles[0].ID, "a")
	f.post(t, f.articles[1].ID, "b")
	f.post(t, f.articles[0].ID, "c")

	assert.Len(t, decodeList(t, f.do(http.MethodGet, "/api/comments", "")), 3)

	byArticle := decodeList(t, f.do(http.MethodGet, "/api/comments?articleId="+f.articles[0].ID, ""))
	require.Len(t, byArticle, 2)
	assert.Equal(t, "a", byArticle[0].Content)
	assert.Equal(t, "c", byArticle[1].Content)

	assert.Empty(t, decodeList(t, f.do(http.MethodGet, "/api/comments?articleId=missing", "")))
}

func TestAuthorRemoved(t *testing.T) {
	f := newFixture(t)
	c := f.post(t, f.articles[0].ID, "orphaned soon")

	alice, err := f.users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(context.Background(), alice.ID))

	rr := f.do(http.MethodGet, "/api/comments/"+c.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"author":null`)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	c := f.post(t, f.articles[0].ID, "bye")

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/api/comments/"+c.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/comments/"+c.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/comments/"+c.ID, "").Code)
}
