package repositories

import (
	"sync"
	"time"

	"courier/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MockAccountRepository is an in-memory implementation of AccountRepository.
// It stands in for PostgreSQL in tests, emulating the store-side digest
// behaviour with bcrypt so the hash still never leaves the repository.
type MockAccountRepository struct {
	users map[string]models.User // keyed by email
	mu    sync.RWMutex
}

// NewMockAccountRepository creates a new instance of MockAccountRepository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		users: make(map[string]models.User),
	}
}

// RegisterWithAddress creates a user, hashing the password before it is
// stored. The address fields are accepted and discarded; tests that care
// about address rows use the GORM repository.
func (r *MockAccountRepository) RegisterWithAddress(reg *models.Registration) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[reg.Email]; ok {
		return nil, ErrDuplicateEmail
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.New().String(),
		Email:     reg.Email,
		Username:  reg.Username,
		Password:  string(digest),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[reg.Email] = user

	public := user
	public.Password = ""
	return &public, nil
}

// FindByCredentials compares the submitted password against the stored
// digest without ever returning the digest.
func (r *MockAccountRepository) FindByCredentials(email, password string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrNotFound
	}

	public := user
	public.Password = ""
	return &public, nil
}

// FindByEmail returns a user by email.
func (r *MockAccountRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// FindByID returns a user by id.
func (r *MockAccountRepository) FindByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
