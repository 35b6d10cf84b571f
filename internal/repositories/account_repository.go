package repositories

import (
	"errors"

	"courier/internal/models"
)

// Store-level outcomes the services translate into their own taxonomy.
var (
	// ErrDuplicateEmail reports that the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound reports that no record matched the lookup.
	ErrNotFound = errors.New("record not found")
)

// AccountRepository defines data access for the relational identity store.
type AccountRepository interface {
	// RegisterWithAddress atomically creates a user row and its address row.
	// The password digest is computed inside the insert statement by the
	// database; the plaintext never lands in a column. Returns
	// ErrDuplicateEmail when the pre-check finds the email taken.
	RegisterWithAddress(reg *models.Registration) (*models.User, error)
	// FindByCredentials resolves a user by email and password using the
	// store's one-way digest comparison. The stored hash is never loaded
	// into application memory. Returns ErrNotFound when no row matches.
	FindByCredentials(email, password string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
}
