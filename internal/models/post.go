package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses. Public endpoints only ever serve published posts.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// DefaultPostAuthor is used when a post is created without an author.
const DefaultPostAuthor = "Saurabh Kumar Jha"

// Post represents a blog post stored in MongoDB. Field names match the
// documents the site already holds, so the collection is shared as-is.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Slug          string             `json:"slug" bson:"slug"`
	Content       string             `json:"content" bson:"content"`
	Excerpt       string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	FeaturedImage string             `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	Status        string             `json:"status" bson:"status"`
	Author        string             `json:"author" bson:"author"`
	Tags          []string           `json:"tags" bson:"tags"`
	Views         int64              `json:"views" bson:"views"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreatePostRequest defines the request body for creating a new post.
// A supplied slug is only a naming hint; the stored slug is derived from it
// (or from the title) and deduplicated server-side.
type CreatePostRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=200"`
	Slug          string   `json:"slug,omitempty"`
	Content       string   `json:"content" validate:"required,min=1"`
	Excerpt       string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
	Status        string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Author        string   `json:"author,omitempty" validate:"omitempty,max=100"`
	Tags          []string `json:"tags,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Slug and view count are deliberately absent: the slug is fixed at creation
// and counters only move through the engagement endpoints.
type UpdatePostRequest struct {
	Title         string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content       string   `json:"content,omitempty" validate:"omitempty,min=1"`
	Excerpt       string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	FeaturedImage string   `json:"featuredImage,omitempty"`
	Status        string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Author        string   `json:"author,omitempty" validate:"omitempty,max=100"`
	Tags          []string `json:"tags,omitempty"`
}

// NormalizeTags trims whitespace, drops empties and removes duplicates while
// keeping the first occurrence order. Comparison is case-sensitive.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
