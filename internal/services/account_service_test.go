package services_test

import (
	"fmt"
	"testing"

	"courier/internal/models"
	"courier/internal/repositories"
	"courier/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of
// repositories.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) RegisterWithAddress(reg *models.Registration) (*models.User, error) {
	args := m.Called(reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountRepository) FindByCredentials(email, password string) (*models.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAccountService_Register(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockEvents := new(MockEventPublisher)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), mockEvents)

	created := &models.User{ID: "user-123", Email: "a@x.com", Username: "a"}
	mockRepo.On("RegisterWithAddress", mock.AnythingOfType("*models.Registration")).Return(created, nil).Once()
	mockEvents.On("PublishUserRegistered", mock.Anything).Return(nil).Once()

	user, err := accountService.Register(&models.Registration{
		Email:    "A@X.com",
		Username: "a",
		Password: "p",
		Country:  "US",
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestAccountService_RegisterNormalizesEmail(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), nil)

	mockRepo.On("RegisterWithAddress", mock.MatchedBy(func(reg *models.Registration) bool {
		return reg.Email == "a@x.com"
	})).Return(&models.User{ID: "user-123", Email: "a@x.com"}, nil).Once()

	_, err := accountService.Register(&models.Registration{
		Email:    " A@X.COM ",
		Username: "a",
		Password: "p",
		Country:  "US",
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_RegisterMissingFields(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), nil)

	_, err := accountService.Register(&models.Registration{
		Email:    "a@x.com",
		Username: "a",
		Password: "p",
		// Country missing
	})
	assert.ErrorIs(t, err, services.ErrMissingFields)

	// No connection is acquired when validation short-circuits.
	mockRepo.AssertNotCalled(t, "RegisterWithAddress", mock.Anything)
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockEvents := new(MockEventPublisher)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), mockEvents)

	mockRepo.On("RegisterWithAddress", mock.AnythingOfType("*models.Registration")).
		Return(nil, repositories.ErrDuplicateEmail).Once()

	_, err := accountService.Register(&models.Registration{
		Email:    "a@x.com",
		Username: "a",
		Password: "p",
		Country:  "US",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	// No event is published for a failed registration.
	mockEvents.AssertNotCalled(t, "PublishUserRegistered", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_Login(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), nil)
	tokenService := services.NewTokenService("test_jwt_secret")

	user := &models.User{ID: "user-123", Email: "a@x.com", Username: "a"}

	// Successful login returns the user and a decodable token.
	mockRepo.On("FindByCredentials", "a@x.com", "p").Return(user, nil).Once()
	got, token, err := accountService.Login("a@x.com", "p")
	assert.NoError(t, err)
	assert.Equal(t, "a", got.Username)
	claims, err := tokenService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)

	// Zero rows from the store-side comparison: unknown email and wrong
	// password are the same failure.
	mockRepo.On("FindByCredentials", "a@x.com", "wrong").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = accountService.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Store failure stays opaque.
	mockRepo.On("FindByCredentials", "a@x.com", "p").Return(nil, fmt.Errorf("connection reset")).Once()
	_, _, err = accountService.Login("a@x.com", "p")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)

	// Missing input short-circuits.
	_, _, err = accountService.Login("", "p")
	assert.ErrorIs(t, err, services.ErrMissingFields)

	mockRepo.AssertExpectations(t)
}

func TestAccountService_RegisterPublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockEvents := new(MockEventPublisher)
	accountService := services.NewAccountService(mockRepo, services.NewTokenService("test_jwt_secret"), mockEvents)

	mockRepo.On("RegisterWithAddress", mock.AnythingOfType("*models.Registration")).
		Return(&models.User{ID: "user-123", Email: "a@x.com"}, nil).Once()
	mockEvents.On("PublishUserRegistered", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// Publishing is best effort: the registration still succeeds.
	user, err := accountService.Register(&models.Registration{
		Email:    "a@x.com",
		Username: "a",
		Password: "p",
		Country:  "US",
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	mockEvents.AssertExpectations(t)
}
