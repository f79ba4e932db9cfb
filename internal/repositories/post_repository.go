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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetPublishedPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	GetAllPublishedPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (*models.Post, error)
	IncrementViews(ctx context.Context, slug string) (int64, error)
	GetViewCount(ctx context.Context, slug string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the unique slug index. The index is what makes slug
// assignment race-safe: concurrent inserts with the same slug cannot both
// succeed, whatever any prior read said.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreatePost inserts a new post. A unique index collision on the slug is
// reported as ErrDuplicateSlug so callers can retry with another candidate.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

// GetPostByID retrieves a post by ID regardless of status. A malformed ID
// identifies nothing and is reported as ErrNotFound.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedPostBySlug retrieves a published post by slug. Drafts are
// indistinguishable from missing posts here.
func (r *MongoPostRepository) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"slug": slug, "status": models.PostStatusPublished}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedPosts retrieves published posts newest-first with pagination,
// along with the total number of published posts.
func (r *MongoPostRepository) GetPublishedPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	return r.findPage(ctx, bson.M{"status": models.PostStatusPublished}, skip, limit)
}

// GetAllPosts retrieves posts of every status newest-first with pagination,
// along with the total post count.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	return r.findPage(ctx, bson.M{}, skip, limit)
}

func (r *MongoPostRepository) findPage(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	posts := []models.Post{}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetAllPublishedPosts retrieves every published post newest-first, without
// pagination. Used to build the sitemap.
func (r *MongoPostRepository) GetAllPublishedPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": models.PostStatusPublished}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies the provided fields to an existing post and returns the
// updated document. The slug and the view counter are never part of the
// update, whatever the request carried.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Content != "" {
		set["content"] = req.Content
	}
	if req.Excerpt != "" {
		set["excerpt"] = req.Excerpt
	}
	if req.FeaturedImage != "" {
		set["featuredImage"] = req.FeaturedImage
	}
	if req.Status != "" {
		set["status"] = req.Status
	}
	if req.Author != "" {
		set["author"] = req.Author
	}
	if req.Tags != nil {
		set["tags"] = models.NormalizeTags(req.Tags)
	}

	var post models.Post
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by ID and returns the deleted document so the
// caller can clean up view logs for its slug.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// IncrementViews atomically increments the view counter of a published post
// and returns the new count.
func (r *MongoPostRepository) IncrementViews(ctx context.Context, slug string) (int64, error) {
	var post models.Post
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"slug": slug, "status": models.PostStatusPublished},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return post.Views, nil
}

// GetViewCount returns the current view counter of a published post.
func (r *MongoPostRepository) GetViewCount(ctx context.Context, slug string) (int64, error) {
	post, err := r.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	return post.Views, nil
}
