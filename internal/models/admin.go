package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin est un compte séparé des clients : collection "admins", rôle toujours "admin".
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
