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

const courseCollectionName = "courses"

// mongoCourseRepository implements repository.CourseRepository
type mongoCourseRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoCourseRepository creates a new Course repository backed by MongoDB.
func NewMongoCourseRepository(db *mongo.Database) repository.CourseRepository {
	return &mongoCourseRepository{
		client:     db.Client(),
		collection: db.Collection(courseCollectionName),
	}
}

// GetAll retrieves every course, newest first.
func (r *mongoCourseRepository) GetAll(ctx context.Context) ([]domain.Course, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByID retrieves a course by its ID.
func (r *mongoCourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course. The embedded final quiz always starts as an
// empty list, never absent.
func (r *mongoCourseRepository) Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error) {
	if course.TitleAr == "" {
		return primitive.NilObjectID, errors.New("course title is required")
	}

	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now().UTC()
	if course.FinalQuiz == nil {
		course.FinalQuiz = []domain.Question{}
	}

	result, err := r.collection.InsertOne(ctx, course)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Update applies a partial field update. Nil fields stay untouched.
func (r *mongoCourseRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.CourseUpdate) error {
	set := bson.M{}
	if update.TitleAr != nil {
		set["titleAr"] = *update.TitleAr
	}
	if update.DescriptionAr != nil {
		set["descriptionAr"] = *update.DescriptionAr
	}
	if update.Instructor != nil {
		set["instructor"] = *update.Instructor
	}
	if update.ImageURL != nil {
		set["imageUrl"] = *update.ImageURL
	}
	if update.Published != nil {
		set["published"] = *update.Published
	}
	if len(set) == 0 {
		return repository.ErrUpdateFailed
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a course. Videos referencing it are left in place; the
// reference is not enforced.
func (r *mongoCourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MutateFinalQuiz rewrites the embedded final_quiz array inside a session
// transaction: read the current list, hand a copy to mutate, write the
// replacement back. Concurrent edits are serialized by the transaction.
func (r *mongoCourseRepository) MutateFinalQuiz(ctx context.Context, id primitive.ObjectID, mutate repository.QuestionsMutation) error {
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		var course domain.Course
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&course); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return repository.ErrNotFound
			}
			return err
		}

		questions, err := mutate(append([]domain.Question(nil), course.FinalQuiz...))
		if err != nil {
			return err
		}
		if questions == nil {
			questions = []domain.Question{}
		}

		_, err = r.collection.UpdateOne(sc, bson.M{"_id": id}, bson.M{"$set": bson.M{"final_quiz": questions}})
		return err
	})
}

// UnsetLegacyTitles strips the English title field left behind by the old
// backend from every course document.
func (r *mongoCourseRepository) UnsetLegacyTitles(ctx context.Context) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{"$unset": bson.M{"titleEn": ""}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// EnsureCourseIndexes creates necessary indexes for the courses collection.
func EnsureCourseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "published", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
