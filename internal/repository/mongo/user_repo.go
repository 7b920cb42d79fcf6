package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

const (
	userCollectionName    = "users"
	attemptCollectionName = "user_quiz_attempts"
)

// mongoUserRepository implements repository.UserRepository
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new User repository backed by MongoDB.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetAll scans the full users collection. Analytics and listings work on the
// whole set; there is no pagination at this layer.
func (r *mongoUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// mongoAttemptRepository implements repository.AttemptRepository
type mongoAttemptRepository struct {
	collection *mongo.Collection
}

// NewMongoAttemptRepository creates a new quiz attempt repository backed by
// MongoDB.
func NewMongoAttemptRepository(db *mongo.Database) repository.AttemptRepository {
	return &mongoAttemptRepository{
		collection: db.Collection(attemptCollectionName),
	}
}

// GetAll scans the append-only attempt log.
func (r *mongoAttemptRepository) GetAll(ctx context.Context) ([]domain.QuizAttempt, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []domain.QuizAttempt
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// EnsureAttemptIndexes creates necessary indexes for the attempts
// collection.
func EnsureAttemptIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
