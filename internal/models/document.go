package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentUser is the identity record kept in the document store. It is a
// separate bounded context from the relational User: the two stores never
// cross-reference each other.
type DocumentUser struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username  string               `bson:"username,omitempty" json:"username,omitempty"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	Messages  []primitive.ObjectID `bson:"messages" json:"messages"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// Message is a document-store message exchanged between two users.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver  primitive.ObjectID `bson:"receiver" json:"receiver"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profile is a DocumentUser with its referenced messages expanded inline
// and the password digest projected out.
type Profile struct {
	ID        primitive.ObjectID `json:"_id"`
	Username  string             `json:"username,omitempty"`
	Email     string             `json:"email"`
	Messages  []Message          `json:"messages"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
