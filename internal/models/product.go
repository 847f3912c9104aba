package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Brand       string             `bson:"brand" json:"brand"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" binding:"required"`
	Stock       int                `bson:"stock" json:"stock"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Notes       []string           `bson:"notes" json:"notes"`
	ImageURLs   []string           `bson:"image_urls" json:"image_urls"`
	Tags        []string           `bson:"tags" json:"tags"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`

	// Prix affiché selon le pays demandé (?country=), jamais persisté
	DisplayPrice string `bson:"-" json:"display_price,omitempty"`
}
