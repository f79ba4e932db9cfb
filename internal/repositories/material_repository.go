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

// MaterialRepository defines the interface for practice material data operations
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material *models.Material) error
	GetMaterialByID(ctx context.Context, id string) (*models.Material, error)
	GetAllMaterials(ctx context.Context) ([]models.Material, error)
	UpdateMaterial(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) (int64, error)
}

// MongoMaterialRepository implements MaterialRepository for MongoDB
type MongoMaterialRepository struct {
	collection *mongo.Collection
}

// NewMongoMaterialRepository creates a new MongoMaterialRepository
func NewMongoMaterialRepository(db *mongo.Database) *MongoMaterialRepository {
	return &MongoMaterialRepository{collection: db.Collection("materials")}
}

// CreateMaterial inserts a new material
func (r *MongoMaterialRepository) CreateMaterial(ctx context.Context, material *models.Material) error {
	material.ID = primitive.NewObjectID()
	material.CreatedAt = time.Now()
	material.UpdatedAt = material.CreatedAt
	_, err := r.collection.InsertOne(ctx, material)
	return err
}

// GetMaterialByID retrieves a material by ID. A malformed ID identifies
// nothing and is reported as ErrNotFound.
func (r *MongoMaterialRepository) GetMaterialByID(ctx context.Context, id string) (*models.Material, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var material models.Material
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// GetAllMaterials retrieves all materials newest-first
func (r *MongoMaterialRepository) GetAllMaterials(ctx context.Context) ([]models.Material, error) {
	materials := []models.Material{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// UpdateMaterial applies the provided fields to an existing material and
// returns the updated document. The download counter is never touched here.
func (r *MongoMaterialRepository) UpdateMaterial(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.Material, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Date != "" {
		set["date"] = req.Date
	}
	if req.Category != "" {
		set["category"] = req.Category
	}
	if req.Type != "" {
		set["type"] = req.Type
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.FileURL != "" {
		set["fileUrl"] = req.FileURL
	}
	if req.ImageURL != "" {
		set["imageUrl"] = req.ImageURL
	}

	var material models.Material
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial deletes a material by ID
func (r *MongoMaterialRepository) DeleteMaterial(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDownloads atomically increments the download counter and returns
// the new count. Every call counts; downloads are not deduplicated.
func (r *MongoMaterialRepository) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrNotFound
	}

	var material models.Material
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"downloads": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return material.Downloads, nil
}
