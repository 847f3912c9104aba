package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password,omitempty" json:"-"`
	Role       string             `bson:"role" json:"role,omitempty"`
	Provider   string             `bson:"provider" json:"provider,omitempty"`
	ProviderID string             `bson:"provider_id,omitempty" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
