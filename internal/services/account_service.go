package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"courier/internal/models"
	"courier/internal/repositories"
)

// AccountService handles business logic for the relational identity store:
// the atomic user+address registration and the store-side credential check.
type AccountService struct {
	accounts repositories.AccountRepository
	tokens   *TokenService
	events   EventPublisher
}

// NewAccountService creates a new AccountService. events may be nil when no
// broker is configured.
func NewAccountService(accounts repositories.AccountRepository, tokens *TokenService, events EventPublisher) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokens:   tokens,
		events:   events,
	}
}

// Register creates a user and its address as one unit. Missing required
// fields short-circuit before any connection is acquired; a taken email
// surfaces as ErrEmailTaken without opening a write transaction.
func (s *AccountService) Register(reg *models.Registration) (*models.User, error) {
	if reg.Email == "" || reg.Username == "" || reg.Password == "" || reg.Country == "" {
		return nil, ErrMissingFields
	}
	reg.Email = normalizeEmail(reg.Email)

	user, err := s.accounts.RegisterWithAddress(reg)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publishRegistered(user.Email, "relational")
	return user, nil
}

// Login verifies credentials entirely inside the store and, on success,
// issues a signed token for the resolved identity. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AccountService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.accounts.FindByCredentials(normalizeEmail(email), password)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to verify credentials: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *AccountService) publishRegistered(email, store string) {
	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"event":         "user.registered",
		"email":         email,
		"store":         store,
		"registered_at": time.Now().Format(time.RFC3339),
	}
	if err := s.events.PublishUserRegistered(event); err != nil {
		log.Printf("Failed to publish user.registered event for %s: %v", email, err)
	}
}

// normalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive across both stores.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
