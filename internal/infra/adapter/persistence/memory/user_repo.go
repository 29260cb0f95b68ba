package memory

import (
	"context"
	"slices"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
)

type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.SubscribedTopicIDs = slices.Clone(u.SubscribedTopicIDs)
	if cp.SubscribedTopicIDs == nil {
		cp.SubscribedTopicIDs = []string{}
	}
	return &cp
}

func (r *UserRepo) Get(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

// find must be called with the lock held.
func (r *UserRepo) find(match func(*entity.User) bool) *entity.User {
	for _, id := range r.s.users.order {
		if u := r.s.users.byID[id]; match(u) {
			return cloneUser(u)
		}
	}
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]*entity.User, 0, len(r.s.users.order))
	for _, id := range r.s.users.order {
		users = append(users, cloneUser(r.s.users.byID[id]))
	}
	return users, nil
}

// conflict reports a unique field already used by a user other than self.
// It must be called with the lock held.
func (r *UserRepo) conflict(self, email, username string) string {
	for id, u := range r.s.users.byID {
		if id == self {
			continue
		}
		if u.Email == email {
			return "email already exists"
		}
		if u.Username == username {
			return "username already exists"
		}
	}
	return ""
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if msg := r.conflict("", user.Email, user.Username); msg != "" {
		return duplicate("Create", msg)
	}
	user.ID = newID()
	r.s.users.put(user.ID, cloneUser(user))
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users.byID[user.ID]
	if !ok {
		return notFound("Update", "user not found")
	}
	if msg := r.conflict(user.ID, user.Email, user.Username); msg != "" {
		return duplicate("Update", msg)
	}
	cur.Email = user.Email
	cur.Username = user.Username
	cur.Password = user.Password
	return nil
}

func (r *UserRepo) AddSubscription(_ context.Context, userID, topicID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users.byID[userID]; ok {
		u.Subscribe(topicID)
	}
	return nil
}

func (r *UserRepo) RemoveSubscription(_ context.Context, userID, topicID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users.byID[userID]; ok {
		u.Unsubscribe(topicID)
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.users.remove(id) {
		return notFound("Delete", "user not found")
	}
	return nil
}
