package repositories

import (
	"context"
	"time"

	"github.com/saurabhkjha/studymaterial-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// viewLogTTL is how long a (slug, visitor) pair blocks a recount.
const viewLogTTL = 24 * time.Hour

// ViewLogRepository defines the interface for view deduplication records
type ViewLogRepository interface {
	InsertEntry(ctx context.Context, slug, visitor string) (bool, error)
	DeleteBySlug(ctx context.Context, slug string) error
	EnsureIndexes(ctx context.Context) error
}

type viewLogRepository struct {
	collection *mongo.Collection
}

// NewViewLogRepository creates a ViewLogRepository backed by MongoDB
func NewViewLogRepository(db *mongo.Database) ViewLogRepository {
	return &viewLogRepository{collection: db.Collection("viewlogs")}
}

// EnsureIndexes creates the unique (slug, visitor) index and the TTL index
// that expires entries after 24 hours. Dedup and expiry both live in the
// store; the application never scans for stale entries.
func (r *viewLogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}, {Key: "visitor", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(viewLogTTL / time.Second)),
		},
	})
	return err
}

// InsertEntry records that a visitor viewed a post. The insert itself is the
// dedup decision: it reports true when this is the first view of the slug by
// the visitor inside the TTL window, false when the unique index already
// holds the pair. No separate existence check runs before it.
func (r *viewLogRepository) InsertEntry(ctx context.Context, slug, visitor string) (bool, error) {
	entry := models.ViewLogEntry{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Visitor:   visitor,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteBySlug removes all entries for a slug when its post is deleted.
func (r *viewLogRepository) DeleteBySlug(ctx context.Context, slug string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"slug": slug})
	return err
}
