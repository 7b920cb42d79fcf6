package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

const adminCollectionName = "admins"

// mongoAdminRepository implements repository.AdminRepository
type mongoAdminRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminRepository creates a new Admin repository backed by MongoDB.
func NewMongoAdminRepository(db *mongo.Database) repository.AdminRepository {
	return &mongoAdminRepository{
		collection: db.Collection(adminCollectionName),
	}
}

// Create inserts a new admin account.
func (r *mongoAdminRepository) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	if admin.Email == "" || admin.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("admin email and password hash are required")
	}

	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves an admin account by email.
func (r *mongoAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureAdminIndexes creates necessary indexes for the admins collection.
func EnsureAdminIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
