package services_test

import (
	"context"
	"testing"

	"courier/internal/models"
	"courier/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockMessageRepository is a mock implementation of
// repositories.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func TestMessageService_Create(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	messageService := services.NewMessageService(mockRepo)

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).Return(nil).Once()

	message, err := messageService.Create(context.Background(), sender.Hex(), receiver.Hex(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, sender, message.Sender)
	assert.Equal(t, receiver, message.Receiver)
	assert.Equal(t, "hello", message.Content)
	mockRepo.AssertExpectations(t)
}

func TestMessageService_CreateMissingFields(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	messageService := services.NewMessageService(mockRepo)

	_, err := messageService.Create(context.Background(), primitive.NewObjectID().Hex(), "", "hello")
	assert.ErrorIs(t, err, services.ErrMissingFields)

	_, err = messageService.Create(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), "")
	assert.ErrorIs(t, err, services.ErrMissingFields)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageService_CreateInvalidIDs(t *testing.T) {
	mockRepo := new(MockMessageRepository)
	messageService := services.NewMessageService(mockRepo)

	_, err := messageService.Create(context.Background(), "not-an-id", primitive.NewObjectID().Hex(), "hello")
	assert.Error(t, err)

	_, err = messageService.Create(context.Background(), primitive.NewObjectID().Hex(), "not-an-id", "hello")
	assert.Error(t, err)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
