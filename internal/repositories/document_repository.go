package repositories

import (
	"context"

	"courier/internal/models"
)

// DocumentUserRepository defines data access for the document-oriented
// identity store. The document and relational stores are independent
// bounded contexts; nothing cross-references them.
type DocumentUserRepository interface {
	Create(ctx context.Context, user *models.DocumentUser) error
	// FindByEmail looks a user up by its unique email. Returns ErrNotFound
	// when no document matches.
	FindByEmail(ctx context.Context, email string) (*models.DocumentUser, error)
	// FindByIDWithMessages resolves a user by id with the password projected
	// out and the referenced messages expanded inline. A malformed or
	// dangling id yields ErrNotFound.
	FindByIDWithMessages(ctx context.Context, id string) (*models.Profile, error)
}

// MessageRepository defines data access for document-store messages.
type MessageRepository interface {
	// Create inserts the message and links its id into the sender's
	// referenced message list.
	Create(ctx context.Context, message *models.Message) error
}
