package topic

import (
	"context"
	"fmt"
	"strings"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/observability/metrics"
	"mdd-backend/internal/repository"
)

// CreateInput represents the input parameters for creating a topic.
type CreateInput struct {
	Name        string
	Description string
}

// Service provides topic management use cases.
type Service struct {
	Repo repository.TopicRepository
}

// Create stores a new topic. A name already in use surfaces as
// entity.ErrDuplicate from the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Topic, error) {
	t := &entity.Topic{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	metrics.RecordTopicCreated()
	return t, nil
}

// Get returns the topic with the given id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Topic, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if t == nil {
		return nil, ErrTopicNotFound
	}
	return t, nil
}

// List returns every topic ordered by name.
func (s *Service) List(ctx context.Context) ([]*entity.Topic, error) {
	topics, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Delete removes the topic. Subscriptions and articles referencing it are
// left in place; user views skip the missing topic.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	metrics.RecordDeletion("topic")
	return nil
}
