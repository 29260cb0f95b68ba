// Package memory implements the repositories in process memory for local
// development and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

// Store holds every collection behind a single lock. Each collection keeps
// insertion order so listings are deterministic.
type Store struct {
	mu       sync.RWMutex
	users    collection[entity.User]
	topics   collection[entity.Topic]
	articles collection[entity.Article]
	comments collection[entity.Comment]
}

type collection[T any] struct {
	byID  map[string]*T
	order []string
}

func newCollection[T any]() collection[T] {
	return collection[T]{byID: make(map[string]*T)}
}

func (c *collection[T]) put(id string, v *T) {
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	return true
}

// all returns copies in insertion order.
func (c *collection[T]) all() []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		v := *c.byID[id]
		out = append(out, &v)
	}
	return out
}

func (c *collection[T]) get(id string) *T {
	v, ok := c.byID[id]
	if !ok {
		return nil
	}
	cp := *v
	return &cp
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    newCollection[entity.User](),
		topics:   newCollection[entity.Topic](),
		articles: newCollection[entity.Article](),
		comments: newCollection[entity.Comment](),
	}
}

// Ping always succeeds; it lets the store back the readiness check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Users() repository.UserRepository       { return &UserRepo{s: s} }
func (s *Store) Topics() repository.TopicRepository     { return &TopicRepo{s: s} }
func (s *Store) Articles() repository.ArticleRepository { return &ArticleRepo{s: s} }
func (s *Store) Comments() repository.CommentRepository { return &CommentRepo{s: s} }

func notFound(op, msg string) error {
	return fmt.Errorf("%s: %w", op, entity.NotFound(msg))
}

func duplicate(op, msg string) error {
	return fmt.Errorf("%s: %w", op, entity.Duplicate(msg))
}

func newID() string { return uuid.NewString() }
