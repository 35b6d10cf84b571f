package repositories

import (
	"context"
	"sync"
	"time"

	"courier/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockDocumentUserRepository is an in-memory implementation of
// DocumentUserRepository.
type MockDocumentUserRepository struct {
	users    map[primitive.ObjectID]models.DocumentUser
	messages map[primitive.ObjectID]models.Message
	mu       sync.RWMutex
}

// NewMockDocumentUserRepository creates a new instance of
// MockDocumentUserRepository.
func NewMockDocumentUserRepository() *MockDocumentUserRepository {
	return &MockDocumentUserRepository{
		users:    make(map[primitive.ObjectID]models.DocumentUser),
		messages: make(map[primitive.ObjectID]models.Message),
	}
}

// Create adds a new user document, enforcing the unique email the way the
// store index would.
func (r *MockDocumentUserRepository) Create(_ context.Context, user *models.DocumentUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Messages == nil {
		user.Messages = []primitive.ObjectID{}
	}
	r.users[user.ID] = *user
	return nil
}

// FindByEmail returns a user by email.
func (r *MockDocumentUserRepository) FindByEmail(_ context.Context, email string) (*models.DocumentUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// FindByIDWithMessages returns a profile with messages expanded and no
// password field.
func (r *MockDocumentUserRepository) FindByIDWithMessages(_ context.Context, id string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[oid]
	if !ok {
		return nil, ErrNotFound
	}

	profile := &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Messages:  []models.Message{},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	for _, msgID := range user.Messages {
		if msg, ok := r.messages[msgID]; ok {
			profile.Messages = append(profile.Messages, msg)
		}
	}
	return profile, nil
}

// AddMessage stores a message and links it to the sender, mirroring
// MongoMessageRepository.Create. Exposed so the message mock can share
// state with the user mock.
func (r *MockDocumentUserRepository) AddMessage(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	message.ID = primitive.NewObjectID()
	message.CreatedAt = now
	message.UpdatedAt = now
	r.messages[message.ID] = *message

	if sender, ok := r.users[message.Sender]; ok {
		sender.Messages = append(sender.Messages, message.ID)
		r.users[message.Sender] = sender
	}
	return nil
}

// MockMessageRepository is an in-memory implementation of MessageRepository
// sharing state with a MockDocumentUserRepository.
type MockMessageRepository struct {
	users *MockDocumentUserRepository
}

// NewMockMessageRepository creates a new instance of MockMessageRepository.
func NewMockMessageRepository(users *MockDocumentUserRepository) *MockMessageRepository {
	return &MockMessageRepository{users: users}
}

// Create stores the message and links it to its sender.
func (r *MockMessageRepository) Create(_ context.Context, message *models.Message) error {
	return r.users.AddMessage(message)
}
