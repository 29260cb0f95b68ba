package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/observability/metrics"
	"mdd-backend/internal/repository"
	"mdd-backend/internal/usecase/user"
)

// View is a comment with its author resolved. Author is nil when the user
// who wrote it has been deleted.
type View struct {
	ID        string
	Content   string
	CreatedAt time.Time
	Author    *user.View
	ArticleID string
}

// Authors resolves users into views. *user.Service satisfies it.
type Authors interface {
	Get(ctx context.Context, id string) (*user.View, error)
	GetByEmail(ctx context.Context, email string) (*user.View, error)
}

// Service provides comment use cases.
type Service struct {
	Comments repository.CommentRepository
	Articles repository.ArticleRepository
	Users    Authors
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create posts content on the article as the user with authorEmail.
func (s *Service) Create(ctx context.Context, content, articleID, authorEmail string) (*View, error) {
	article, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	author, err := s.Users.GetByEmail(ctx, authorEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve comment author: %w", err)
	}

	c := &entity.Comment{
		Content:   strings.TrimSpace(content),
		CreatedAt: s.now().UTC(),
		AuthorID:  author.ID,
		ArticleID: article.ID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCommentCreated()
	return newView(c, author), nil
}

// Get returns the comment with the given id.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	c, err := s.Comments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	views, err := s.Views(ctx, []*entity.Comment{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// List returns every comment, oldest first.
func (s *Service) List(ctx context.Context) ([]*View, error) {
	comments, err := s.Comments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return s.Views(ctx, comments)
}

// ListByArticle returns the comments of an article, oldest first. An unknown
// article has no comments.
func (s *Service) ListByArticle(ctx context.Context, articleID string) ([]*View, error) {
	comments, err := s.Comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments by article: %w", err)
	}
	return s.Views(ctx, comments)
}

// Delete removes the comment.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.Comments.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if err := s.Comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	metrics.RecordDeletion("comment")
	return nil
}

// Views resolves the authors of comments. Each author is looked up once.
func (s *Service) Views(ctx context.Context, comments []*entity.Comment) ([]*View, error) {
	authors := make(map[string]*user.View)
	views := make([]*View, 0, len(comments))
	for _, c := range comments {
		author, seen := authors[c.AuthorID]
		if !seen {
			var err error
			author, err = s.Users.Get(ctx, c.AuthorID)
			switch {
			case errors.Is(err, entity.ErrNotFound):
				author = nil
			case err != nil:
				return nil, fmt.Errorf("resolve comment author: %w", err)
			}
			authors[c.AuthorID] = author
		}
		views = append(views, newView(c, author))
	}
	return views, nil
}

func newView(c *entity.Comment, author *user.View) *View {
	return &View{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    author,
		ArticleID: c.ArticleID,
	}
}
