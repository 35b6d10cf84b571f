package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository is a mongo-driver implementation of
// DocumentUserRepository over the "users" and "messages" collections.
type MongoUserRepository struct {
	users    *mongo.Collection
	messages *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		users:    db.Collection("users"),
		messages: db.Collection("messages"),
	}
}

// EnsureIndexes creates the unique email index. The index, not the
// application-level lookup, is what guarantees uniqueness under
// concurrent signups.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create inserts a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.DocumentUser) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Messages == nil {
		user.Messages = []primitive.ObjectID{}
	}

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail retrieves a user document by its unique email.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.DocumentUser, error) {
	var user models.DocumentUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// FindByIDWithMessages retrieves a user by id, projecting out the password
// digest, and expands the referenced messages inline.
func (r *MongoUserRepository) FindByIDWithMessages(ctx context.Context, id string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot reference any user.
		return nil, ErrNotFound
	}

	var user models.DocumentUser
	err = r.users.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"password": 0}),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	profile := &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Messages:  []models.Message{},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if len(user.Messages) == 0 {
		return profile, nil
	}

	cursor, err := r.messages.Find(ctx, bson.M{"_id": bson.M{"$in": user.Messages}})
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for user %s: %w", id, err)
	}
	if err := cursor.All(ctx, &profile.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages for user %s: %w", id, err)
	}
	return profile, nil
}
