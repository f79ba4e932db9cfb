package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViewLogEntry is one deduplication record for a post view. The collection
// carries a unique index on (slug, visitor) and a TTL index that expires
// entries 24 hours after creation, so a repeat view inside the window is an
// insert conflict and an expired entry simply stops existing.
type ViewLogEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Slug      string             `json:"slug" bson:"slug"`
	Visitor   string             `json:"visitor" bson:"visitor"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
