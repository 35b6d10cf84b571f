package services

import (
	"context"
	"fmt"

	"courier/internal/models"
	"courier/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService handles creation of document-store messages. The sender
// identity always comes from the caller's session, never from the request
// body.
type MessageService struct {
	messages repositories.MessageRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messages repositories.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Create stores a message from senderID to receiverID.
func (s *MessageService) Create(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if content == "" || receiverID == "" {
		return nil, ErrMissingFields
	}

	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, fmt.Errorf("invalid sender id %q: %w", senderID, err)
	}
	receiver, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, fmt.Errorf("invalid receiver id %q: %w", receiverID, err)
	}

	message := &models.Message{
		Content:  content,
		Sender:   sender,
		Receiver: receiver,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}
