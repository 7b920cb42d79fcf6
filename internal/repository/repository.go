package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/ordering"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// CourseUpdate carries the partial-update fields of a course; nil pointers
// are left untouched.
type CourseUpdate struct {
	TitleAr       *string
	DescriptionAr *string
	Instructor    *string
	ImageURL      *string
	Published     *bool
}

// Empty reports whether the update would touch nothing.
func (u CourseUpdate) Empty() bool {
	return u.TitleAr == nil && u.DescriptionAr == nil && u.Instructor == nil &&
		u.ImageURL == nil && u.Published == nil
}

// VideoUpdate carries the partial-update fields of a video.
type VideoUpdate struct {
	YouTubeID   *string
	TitleAr     *string
	Description *string // also mirrored into description_ar
	Order       *int
}

// Empty reports whether the update would touch nothing.
func (u VideoUpdate) Empty() bool {
	return u.YouTubeID == nil && u.TitleAr == nil && u.Description == nil && u.Order == nil
}

// DescriptionUpdate is one backfill write for a video missing descriptions.
type DescriptionUpdate struct {
	ID          primitive.ObjectID
	Description string
}

// QuestionsMutation rewrites an embedded question list. It receives a copy
// of the current list and returns the replacement, or an error to abort the
// surrounding transaction.
type QuestionsMutation func(questions []domain.Question) ([]domain.Question, error)

// CourseRepository is the interface for the courses collection.
type CourseRepository interface {
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, update CourseUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// MutateFinalQuiz rewrites the embedded final_quiz list inside a
	// transactional read-modify-write, so concurrent edits cannot lose
	// updates.
	MutateFinalQuiz(ctx context.Context, id primitive.ObjectID, mutate QuestionsMutation) error
	// UnsetLegacyTitles removes the abandoned English title field from every
	// course and returns how many documents were touched.
	UnsetLegacyTitles(ctx context.Context) (int64, error)
}

// VideoRepository is the interface for the videos collection.
type VideoRepository interface {
	GetAll(ctx context.Context) ([]domain.Video, error)
	GetByCourseID(ctx context.Context, courseID string) ([]domain.Video, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, update VideoUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// BulkSetOrder applies a reindex plan as batched writes, each batch
	// committed atomically and bounded by the store's batch limit.
	BulkSetOrder(ctx context.Context, plan []ordering.OrderUpdate) error
	// BulkSetDescriptions applies description backfills the same way.
	BulkSetDescriptions(ctx context.Context, updates []DescriptionUpdate) error
	MutateQuestions(ctx context.Context, id primitive.ObjectID, mutate QuestionsMutation) error
	UnsetLegacyTitles(ctx context.Context) (int64, error)
}

// UserRepository is the interface for the users collection.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
}

// AttemptRepository is the interface for the append-only quiz attempt log.
type AttemptRepository interface {
	GetAll(ctx context.Context) ([]domain.QuizAttempt, error)
}

// AdminRepository is the interface for control-panel operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
