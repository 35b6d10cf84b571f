package repositories

import (
	"context"
	"fmt"
	"time"

	"courier/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMessageRepository is a mongo-driver implementation of
// MessageRepository.
type MongoMessageRepository struct {
	users    *mongo.Collection
	messages *mongo.Collection
}

// NewMongoMessageRepository creates a new instance of MongoMessageRepository.
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{
		users:    db.Collection("users"),
		messages: db.Collection("messages"),
	}
}

// Create inserts the message and appends its id to the sender's message
// list. The two writes are not transactional; a crash between them leaves
// an unlinked message, never a dangling reference.
func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now

	res, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}

	_, err = r.users.UpdateOne(ctx,
		bson.M{"_id": message.Sender},
		bson.M{"$push": bson.M{"messages": message.ID}},
	)
	if err != nil {
		return fmt.Errorf("failed to link message to sender: %w", err)
	}
	return nil
}
