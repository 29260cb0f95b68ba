package memory

import (
	"context"
	"sort"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

var (
	_ repository.TopicRepository   = (*TopicRepo)(nil)
	_ repository.ArticleRepository = (*ArticleRepo)(nil)
	_ repository.CommentRepository = (*CommentRepo)(nil)
)

// --- TopicRepository ---

type TopicRepo struct{ s *Store }

func (r *TopicRepo) Get(_ context.Context, id string) (*entity.Topic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.topics.get(id), nil
}

func (r *TopicRepo) GetMany(_ context.Context, ids []string) ([]*entity.Topic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	topics := make([]*entity.Topic, 0, len(ids))
	for _, id := range ids {
		if t := r.s.topics.get(id); t != nil {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

func (r *TopicRepo) List(_ context.Context) ([]*entity.Topic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	topics := r.s.topics.all()
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func (r *TopicRepo) Create(_ context.Context, topic *entity.Topic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.topics.byID {
		if t.Name == topic.Name {
			return duplicate("Create", "topic name already exists")
		}
	}
	topic.ID = newID()
	cp := *topic
	r.s.topics.put(cp.ID, &cp)
	return nil
}

func (r *TopicRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.topics.remove(id) {
		return notFound("Delete", "topic not found")
	}
	return nil
}

// --- ArticleRepository ---

type ArticleRepo struct{ s *Store }

func (r *ArticleRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.articles.get(id), nil
}

// List orders by CreatedAt; articles created at the same instant keep insertion order.
func (r *ArticleRepo) List(_ context.Context, sortKey entity.SortKey) ([]*entity.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	articles := r.s.articles.all()
	if sortKey.Descending() {
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].CreatedAt.After(articles[j].CreatedAt) })
	} else {
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].CreatedAt.Before(articles[j].CreatedAt) })
	}
	return articles, nil
}

func (r *ArticleRepo) Create(_ context.Context, article *entity.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	article.ID = newID()
	cp := *article
	r.s.articles.put(cp.ID, &cp)
	return nil
}

func (r *ArticleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.articles.remove(id) {
		return notFound("Delete", "article not found")
	}
	return nil
}

// --- CommentRepository ---

type CommentRepo struct{ s *Store }

func (r *CommentRepo) Get(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.comments.get(id), nil
}

func (r *CommentRepo) List(_ context.Context) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.comments.all(), nil
}

func (r *CommentRepo) ListByArticle(_ context.Context, articleID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	comments := make([]*entity.Comment, 0)
	for _, c := range r.s.comments.all() {
		if c.ArticleID == articleID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (r *CommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = newID()
	cp := *comment
	r.s.comments.put(cp.ID, &cp)
	return nil
}

func (r *CommentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.comments.remove(id) {
		return notFound("Delete", "comment not found")
	}
	return nil
}
