package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when a material is created without these fields.
const (
	DefaultMaterialCategory = "Practice Material"
	DefaultMaterialType     = "PDF Download"
)

// Material represents a downloadable practice material stored in MongoDB.
// Date is a display string, not a timestamp; the site renders it verbatim.
type Material struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Date        string             `json:"date" bson:"date"`
	Category    string             `json:"category" bson:"category"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	FileURL     string             `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Downloads   int64              `json:"downloads" bson:"downloads"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateMaterialRequest defines the request body for creating a material
type CreateMaterialRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Date        string `json:"date,omitempty" validate:"omitempty,max=50"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=100"`
	Type        string `json:"type,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	FileURL     string `json:"fileUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// UpdateMaterialRequest defines the request body for updating a material.
// The download count is absent on purpose; it only moves through the
// download endpoint.
type UpdateMaterialRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Date        string `json:"date,omitempty" validate:"omitempty,max=50"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=100"`
	Type        string `json:"type,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	FileURL     string `json:"fileUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
