package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"courier/internal/models"
	"courier/internal/repositories"
)

// AuthService handles business logic for the document-store identity:
// signup with application-side hashing, signin with an application-side
// compare, and session-gated profile retrieval.
type AuthService struct {
	users  repositories.DocumentUserRepository
	hasher PasswordHasher
	tokens *TokenService
	events EventPublisher
}

// NewAuthService creates a new AuthService. events may be nil when no
// broker is configured.
func NewAuthService(users repositories.DocumentUserRepository, hasher PasswordHasher, tokens *TokenService, events EventPublisher) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		events: events,
	}
}

// Signup registers a new document-store user. The password is hashed here,
// before it leaves the service; the store only ever sees the digest.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.DocumentUser, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.DocumentUser{
		Username: strings.TrimSpace(username),
		Email:    normalizeEmail(email),
		Password: digest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.publishSignup(user.Email)
	return user, nil
}

// Signin verifies credentials with an application-side compare and, on
// success, issues a signed token. An unknown email is reported as
// ErrUserNotFound; a wrong password as the merged credential failure.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.DocumentUser, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Profile resolves the caller's profile from a session-held user id. The
// session may reference a user that no longer exists; that dangling
// reference surfaces as ErrUserNotFound.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.users.FindByIDWithMessages(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return profile, nil
}

func (s *AuthService) publishSignup(email string) {
	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"event": "user.registered",
		"email": email,
		"store": "document",
	}
	if err := s.events.PublishUserRegistered(event); err != nil {
		// Best effort only; the signup itself already committed.
		log.Printf("Failed to publish user.registered event for %s: %v", email, err)
	}
}
