package repositories_test

import (
	"fmt"
	"testing"

	"courier/internal/models"
	"courier/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens an in-memory SQLite database with the schema migrated.
// SQLite has no pgcrypto, so the crypt()-based paths are covered by the
// service tests against mocks; what this exercises is the existence check,
// the lookup paths and the conflict short-circuit.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Address{}))
	return db
}

func TestGORMAccountRepository_RegisterWithAddressConflict(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMAccountRepository(db)

	seeded := models.User{ID: "user-123", Email: "a@x.com", Username: "a", Password: "digest"}
	assert.NoError(t, db.Create(&seeded).Error)

	_, err := repo.RegisterWithAddress(&models.Registration{
		Email:    "a@x.com",
		Username: "a",
		Password: "p",
		Country:  "US",
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	// The conflict is detected before any write transaction opens: no new
	// user row and no orphan address row.
	var users, addresses int64
	assert.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.NoError(t, db.Model(&models.Address{}).Count(&addresses).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(0), addresses)
}

func TestGORMAccountRepository_WriteFailureLeavesNoRows(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMAccountRepository(db)

	// SQLite has no crypt(), so the insert inside the transaction fails
	// after the existence check passed. The failure must surface as an
	// error with zero net rows in either table.
	_, err := repo.RegisterWithAddress(&models.Registration{
		Email:    "fresh@x.com",
		Username: "fresh",
		Password: "p",
		Country:  "US",
	})
	assert.Error(t, err)

	var users, addresses int64
	assert.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.NoError(t, db.Model(&models.Address{}).Count(&addresses).Error)
	assert.Equal(t, int64(0), users)
	assert.Equal(t, int64(0), addresses)
}

func TestGORMAccountRepository_FindByEmail(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMAccountRepository(db)

	seeded := models.User{ID: "user-123", Email: "a@x.com", Username: "a", Password: "digest"}
	assert.NoError(t, db.Create(&seeded).Error)

	user, err := repo.FindByEmail("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)

	_, err = repo.FindByEmail("nobody@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMAccountRepository_FindByID(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMAccountRepository(db)

	seeded := models.User{ID: "user-123", Email: "a@x.com", Username: "a", Password: "digest"}
	assert.NoError(t, db.Create(&seeded).Error)

	user, err := repo.FindByID("user-123")
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
