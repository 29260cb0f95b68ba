package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/observability/metrics"
	"mdd-backend/internal/observability/tracing"
	"mdd-backend/internal/repository"
	"mdd-backend/internal/usecase/comment"
	"mdd-backend/internal/usecase/user"
)

// listConcurrency bounds the number of articles enriched at once by ListSorted.
const listConcurrency = 8

// View is the article aggregate returned to clients.
type View struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	Author    *user.View
	Topic     *entity.Topic
	Comments  []*comment.View
}

// CreateInput represents the input parameters for publishing an article.
type CreateInput struct {
	Title   string
	Content string
	TopicID string
}

// Authors resolves users into views. *user.Service satisfies it.
type Authors interface {
	Get(ctx context.Context, id string) (*user.View, error)
	GetByEmail(ctx context.Context, email string) (*user.View, error)
}

// Comments lists the comment views of an article. *comment.Service satisfies it.
type Comments interface {
	ListByArticle(ctx context.Context, articleID string) ([]*comment.View, error)
}

// Service provides article use cases.
type Service struct {
	Articles repository.ArticleRepository
	Topics   repository.TopicRepository
	Users    Authors
	Comments Comments
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create publishes an article by the user with authorEmail. Both the author
// and the topic must exist.
func (s *Service) Create(ctx context.Context, in CreateInput, authorEmail string) (*View, error) {
	author, err := s.Users.GetByEmail(ctx, authorEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve article author: %w", err)
	}
	topic, err := s.Topics.Get(ctx, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	a := &entity.Article{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
		AuthorID:  author.ID,
		TopicID:   topic.ID,
	}
	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordArticleCreated()

	v := newView(a)
	v.Author = author
	v.Topic = topic
	return v, nil
}

// Get returns the aggregate view of the article with the given id. A missing
// article is ErrArticleNotFound; a missing author or topic, or any failure
// while resolving them, is an entity.ErrBusinessLogic error.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	ctx, span := tracing.StartSpan(ctx, "article.Get", attribute.String("article.id", id))
	defer span.End()

	a, err := s.Articles.Get(ctx, id)
	if err != nil {
		return nil, tracing.RecordError(span, fmt.Errorf("get article: %w", err))
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	v, err := s.enrich(ctx, a)
	return v, tracing.RecordError(span, err)
}

// ListSorted returns every article in the order selected by sortKey
// (date_asc when empty). Any other key is entity.ErrUnsupportedSort.
func (s *Service) ListSorted(ctx context.Context, sortKey string) ([]*View, error) {
	key, err := entity.ParseSortKey(sortKey)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "article.ListSorted", attribute.String("article.sort", string(key)))
	defer span.End()

	articles, err := s.Articles.List(ctx, key)
	if err != nil {
		return nil, tracing.RecordError(span, fmt.Errorf("list articles: %w", err))
	}
	span.SetAttributes(attribute.Int("article.count", len(articles)))

	views := make([]*View, len(articles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, a := range articles {
		g.Go(func() error {
			v, err := s.enrich(gctx, a)
			if err != nil {
				return err
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, tracing.RecordError(span, err)
	}
	return views, nil
}

// Delete removes the article. Its comments are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Articles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return ErrArticleNotFound
	}
	if err := s.Articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	metrics.RecordDeletion("article")
	return nil
}

// enrich resolves author, topic and comments concurrently.
func (s *Service) enrich(ctx context.Context, a *entity.Article) (*View, error) {
	v := newView(a)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		author, err := s.Users.Get(gctx, a.AuthorID)
		if err != nil {
			return entity.BusinessLogic("failed to resolve article author", err)
		}
		v.Author = author
		return nil
	})
	g.Go(func() error {
		topic, err := s.Topics.Get(gctx, a.TopicID)
		if err != nil {
			return entity.BusinessLogic("failed to resolve article topic", err)
		}
		if topic == nil {
			return entity.BusinessLogic("failed to resolve article topic", ErrTopicNotFound)
		}
		v.Topic = topic
		return nil
	})
	g.Go(func() error {
		comments, err := s.Comments.ListByArticle(gctx, a.ID)
		if err != nil {
			return entity.BusinessLogic("failed to resolve article comments", err)
		}
		v.Comments = comments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

func newView(a *entity.Article) *View {
	return &View{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		Comments:  []*comment.View{},
	}
}
