package repositories

import (
	"errors"
	"fmt"
	"time"

	"courier/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository
// backed by PostgreSQL. Password hashing and verification are delegated to
// pgcrypto's crypt()/gen_salt() so the digest never crosses into the
// application for the store-side login path.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// RegisterWithAddress creates a user and its address as a single
// transaction on a dedicated connection. The flow is: existence check,
// BEGIN, insert user (digest computed in-statement), insert address,
// COMMIT; any failure rolls back and the connection is released on every
// path. The existence check and the insert are not atomic together — the
// unique index on users.email is the final arbiter when two registrations
// race, and a violation surfaces through the generic write-failure path.
func (r *GORMAccountRepository) RegisterWithAddress(reg *models.Registration) (*models.User, error) {
	var created *models.User

	err := r.db.Connection(func(conn *gorm.DB) error {
		var count int64
		if err := conn.Model(&models.User{}).Where("email = ?", reg.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		tx := conn.Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		now := time.Now()
		user := &models.User{
			ID:        uuid.New().String(),
			Email:     reg.Email,
			Username:  reg.Username,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Exec(
			`INSERT INTO users (id, email, username, password, created_at, updated_at) VALUES (?, ?, ?, crypt(?, gen_salt('bf')), ?, ?)`,
			user.ID, user.Email, user.Username, reg.Password, now, now,
		).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert user: %w", err)
		}

		if err := tx.Exec(
			`INSERT INTO addresses (email, country, street, city, created_at) VALUES (?, ?, ?, ?, ?)`,
			user.Email, reg.Country, reg.Street, reg.City, now,
		).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert address: %w", err)
		}

		if err := tx.Commit().Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to commit registration: %w", err)
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindByCredentials resolves a user through the store-side digest
// comparison in a single query. Zero rows means unknown email or wrong
// password — the two cases are indistinguishable here on purpose. The
// password column is excluded from the select list so the digest stays
// inside the store.
func (r *GORMAccountRepository) FindByCredentials(email, password string) (*models.User, error) {
	var user models.User
	if err := r.db.Select("id", "email", "username", "created_at", "updated_at").
		Where("email = ? AND password = crypt(?, password)", email, password).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email.
func (r *GORMAccountRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// FindByID retrieves a user by primary key.
func (r *GORMAccountRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}
