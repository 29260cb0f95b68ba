package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
	"mdd-backend/internal/usecase/user"
)

// TokenIssuer signs a session token for a subject. *auth.TokenService from
// internal/service/auth satisfies it.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Registrar creates accounts. *user.Service satisfies it.
type Registrar interface {
	Create(ctx context.Context, in user.CreateInput) (*user.View, error)
}

// Service authenticates users and issues their tokens.
type Service struct {
	Users     repository.UserRepository
	Registrar Registrar
	Tokens    TokenIssuer
	// BcryptCost is used for the hash compared against when the identifier
	// is unknown, so both failure paths cost one bcrypt comparison.
	BcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// Authenticate resolves usernameOrEmail as an email first, then as a
// username, and checks password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, usernameOrEmail, password string) (*entity.User, error) {
	ident := strings.TrimSpace(usernameOrEmail)

	u, err := s.Users.GetByEmail(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if u == nil {
		u, err = s.Users.GetByUsername(ctx, ident)
		if err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return u, nil
}

// Login authenticates and returns a token whose subject is the user's email.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	u, err := s.Authenticate(ctx, usernameOrEmail, password)
	if err != nil {
		return "", err
	}
	return s.issue(u.Email)
}

// Register creates the account and returns a token for it.
func (s *Service) Register(ctx context.Context, in user.CreateInput) (string, error) {
	v, err := s.Registrar.Create(ctx, in)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return s.issue(v.Email)
}

func (s *Service) issue(email string) (string, error) {
	token, err := s.Tokens.Issue(email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		cost := s.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("mdd-unknown-account"), cost)
	})
	return s.dummyHash
}
