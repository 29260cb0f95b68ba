package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/observability/metrics"
	"mdd-backend/internal/repository"
)

// View is a user as returned to clients: no password, subscriptions
// resolved to topics. Topics that no longer exist are left out.
type View struct {
	ID            string
	Email         string
	Username      string
	Subscriptions []*entity.Topic
	CreatedAt     time.Time
}

// CreateInput represents the input parameters for creating a user.
type CreateInput struct {
	Email    string
	Username string
	Password string
}

// UpdateInput is a partial update. Blank fields are left unchanged.
type UpdateInput struct {
	Email    string
	Username string
	Password string
}

// Service provides user management use cases.
type Service struct {
	Users  repository.UserRepository
	Topics repository.TopicRepository
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HashPassword returns the bcrypt hash of password at the configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Create stores a new user with a hashed password. A taken email or username
// surfaces as entity.ErrDuplicate from the store.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:              strings.TrimSpace(in.Email),
		Username:           strings.TrimSpace(in.Username),
		Password:           hash,
		SubscribedTopicIDs: []string{},
		CreatedAt:          s.now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RecordUserRegistered()
	return s.view(ctx, u)
}

// Get returns the user view for id.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, u)
}

// GetByEmail returns the user view for email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*View, error) {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, u)
}

// List returns every user, oldest first. All subscriptions are resolved with
// a single topic lookup.
func (s *Service) List(ctx context.Context) ([]*View, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, u := range users {
		for _, id := range u.SubscribedTopicIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	topics, err := s.Topics.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve subscriptions: %w", err)
	}
	byID := make(map[string]*entity.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}

	views := make([]*View, 0, len(users))
	for _, u := range users {
		subs := make([]*entity.Topic, 0, len(u.SubscribedTopicIDs))
		for _, id := range u.SubscribedTopicIDs {
			if t, ok := byID[id]; ok {
				subs = append(subs, t)
			}
		}
		views = append(views, newView(u, subs))
	}
	return views, nil
}

// Update applies a partial update to the user with the given id.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*View, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, u, in)
}

// UpdateByEmail applies a partial update to the user with the given email.
func (s *Service) UpdateByEmail(ctx context.Context, email string, in UpdateInput) (*View, error) {
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, u, in)
}

func (s *Service) update(ctx context.Context, u *entity.User, in UpdateInput) (*View, error) {
	email := strings.TrimSpace(in.Email)
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if email != "" {
		u.Email = email
	}
	if username := strings.TrimSpace(in.Username); username != "" {
		u.Username = username
	}
	if strings.TrimSpace(in.Password) != "" {
		hash, err := s.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.view(ctx, u)
}

// Subscribe adds topicID to the subscriptions of the user with userEmail.
// Subscribing twice leaves a single entry.
func (s *Service) Subscribe(ctx context.Context, topicID, userEmail string) (*View, error) {
	u, err := s.findByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	topic, err := s.Topics.Get(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	if err := s.Users.AddSubscription(ctx, u.ID, topicID); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	metrics.RecordSubscriptionChange(metrics.ActionSubscribe)
	return s.Get(ctx, u.ID)
}

// Unsubscribe removes topicID from the subscriptions of the user with
// userEmail. Removing a topic the user does not follow is a no-op.
func (s *Service) Unsubscribe(ctx context.Context, topicID, userEmail string) (*View, error) {
	u, err := s.findByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if !u.IsSubscribed(topicID) {
		return s.view(ctx, u)
	}

	if err := s.Users.RemoveSubscription(ctx, u.ID, topicID); err != nil {
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	metrics.RecordSubscriptionChange(metrics.ActionUnsubscribe)
	return s.Get(ctx, u.ID)
}

// Delete removes the user. Articles and comments by the user are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	metrics.RecordDeletion("user")
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) view(ctx context.Context, u *entity.User) (*View, error) {
	topics, err := s.Topics.GetMany(ctx, u.SubscribedTopicIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve subscriptions: %w", err)
	}
	return newView(u, topics), nil
}

func newView(u *entity.User, subs []*entity.Topic) *View {
	if subs == nil {
		subs = []*entity.Topic{}
	}
	return &View{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Subscriptions: subs,
		CreatedAt:     u.CreatedAt,
	}
}
