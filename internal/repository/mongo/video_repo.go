package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/ordering"
	"madrasa/course-admin/internal/repository"
)

const videoCollectionName = "videos"

// mongoVideoRepository implements repository.VideoRepository
type mongoVideoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new Video repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		client:     db.Client(),
		collection: db.Collection(videoCollectionName),
	}
}

// GetAll retrieves every video across all courses.
func (r *mongoVideoRepository) GetAll(ctx context.Context) ([]domain.Video, error) {
	return r.find(ctx, bson.M{})
}

// GetByCourseID retrieves all videos belonging to one course. No order is
// guaranteed; callers sort by the order field themselves.
func (r *mongoVideoRepository) GetByCourseID(ctx context.Context, courseID string) ([]domain.Video, error) {
	return r.find(ctx, bson.M{"courseId": courseID})
}

func (r *mongoVideoRepository) find(ctx context.Context, filter bson.M) ([]domain.Video, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetByID retrieves a video by its ID.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// Create inserts a new video. The embedded question list always starts as
// an empty list, never absent.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if video.CourseID == "" || video.YouTubeID == "" || video.TitleAr == "" {
		return primitive.NilObjectID, errors.New("course id, youtube id and title are required")
	}

	video.ID = primitive.NewObjectID()
	if video.Questions == nil {
		video.Questions = []domain.Question{}
	}

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Update applies a partial field update. A supplied description is mirrored
// into both description fields.
func (r *mongoVideoRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.VideoUpdate) error {
	set := bson.M{}
	if update.YouTubeID != nil {
		set["youtubeId"] = *update.YouTubeID
	}
	if update.TitleAr != nil {
		set["title_ar"] = *update.TitleAr
	}
	if update.Description != nil {
		set["description"] = *update.Description
		set["description_ar"] = *update.Description
	}
	if update.Order != nil {
		set["order"] = *update.Order
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

// Delete removes a video.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// BulkSetOrder rewrites order ranks in batches of at most batchLimit
// updates. Each batch commits atomically; the whole plan is not coordinated
// with concurrent single-video updates.
func (r *mongoVideoRepository) BulkSetOrder(ctx context.Context, plan []ordering.OrderUpdate) error {
	models := make([]mongo.WriteModel, 0, len(plan))
	for _, update := range plan {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": update.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order": update.Order}}))
	}
	return r.bulkWrite(ctx, models)
}

// BulkSetDescriptions backfills both description fields in batches.
func (r *mongoVideoRepository) BulkSetDescriptions(ctx context.Context, updates []repository.DescriptionUpdate) error {
	models := make([]mongo.WriteModel, 0, len(updates))
	for _, update := range updates {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": update.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"description":    update.Description,
				"description_ar": update.Description,
			}}))
	}
	return r.bulkWrite(ctx, models)
}

func (r *mongoVideoRepository) bulkWrite(ctx context.Context, models []mongo.WriteModel) error {
	for start := 0; start < len(models); start += batchLimit {
		end := start + batchLimit
		if end > len(models) {
			end = len(models)
		}
		if _, err := r.collection.BulkWrite(ctx, models[start:end], options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}
	return nil
}

// MutateQuestions rewrites the embedded questions array inside a session
// transaction, same pattern as the course final quiz.
func (r *mongoVideoRepository) MutateQuestions(ctx context.Context, id primitive.ObjectID, mutate repository.QuestionsMutation) error {
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		var video domain.Video
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&video); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return repository.ErrNotFound
			}
			return err
		}

		questions, err := mutate(append([]domain.Question(nil), video.Questions...))
		if err != nil {
			return err
		}
		if questions == nil {
			questions = []domain.Question{}
		}

		_, err = r.collection.UpdateOne(sc, bson.M{"_id": id}, bson.M{"$set": bson.M{"questions": questions}})
		return err
	})
}

// UnsetLegacyTitles strips the English title field from every video.
func (r *mongoVideoRepository) UnsetLegacyTitles(ctx context.Context) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{"$unset": bson.M{"title_en": ""}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// EnsureVideoIndexes creates necessary indexes for the videos collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Every course-scoped read filters on courseId
			Keys:    bson.D{{Key: "courseId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "courseId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
