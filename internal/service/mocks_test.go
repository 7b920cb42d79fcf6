package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/ordering"
	"madrasa/course-admin/internal/repository"
)

// mockCourseRepository is a mock implementation of repository.CourseRepository.
type mockCourseRepository struct {
	courses    []domain.Course
	course     *domain.Course
	err        error
	createdID  primitive.ObjectID
	lastUpdate repository.CourseUpdate
	deletedID  primitive.ObjectID
	finalQuiz  []domain.Question
	unsetCount int64
}

func (m *mockCourseRepository) GetAll(ctx context.Context) ([]domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, repository.ErrNotFound
	}
	return m.course, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *domain.Course) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	if m.createdID.IsZero() {
		m.createdID = primitive.NewObjectID()
	}
	return m.createdID, nil
}

func (m *mockCourseRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.CourseUpdate) error {
	m.lastUpdate = update
	return m.err
}

func (m *mockCourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.deletedID = id
	return m.err
}

func (m *mockCourseRepository) MutateFinalQuiz(ctx context.Context, id primitive.ObjectID, mutate repository.QuestionsMutation) error {
	if m.err != nil {
		return m.err
	}
	current := append([]domain.Question(nil), m.finalQuiz...)
	next, err := mutate(current)
	if err != nil {
		return err
	}
	m.finalQuiz = next
	return nil
}

func (m *mockCourseRepository) UnsetLegacyTitles(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.unsetCount, nil
}

// mockVideoRepository is a mock implementation of repository.VideoRepository.
// The mutex guards the fields written by background reindexing.
type mockVideoRepository struct {
	mu          sync.Mutex
	videos      []domain.Video
	video       *domain.Video
	err         error
	created     *domain.Video
	lastUpdate  repository.VideoUpdate
	orderPlan   []ordering.OrderUpdate
	descUpdates []repository.DescriptionUpdate
	questions   []domain.Question
	unsetCount  int64
}

func (m *mockVideoRepository) GetAll(ctx context.Context) ([]domain.Video, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.videos, nil
}

func (m *mockVideoRepository) GetByCourseID(ctx context.Context, courseID string) ([]domain.Video, error) {
	if m.err != nil {
		return nil, m.err
	}
	var matched []domain.Video
	for _, v := range m.videos {
		if v.CourseID == courseID {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.video == nil {
		return nil, repository.ErrNotFound
	}
	return m.video, nil
}

func (m *mockVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	m.created = video
	return primitive.NewObjectID(), nil
}

func (m *mockVideoRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.VideoUpdate) error {
	m.lastUpdate = update
	return m.err
}

func (m *mockVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.err
}

func (m *mockVideoRepository) BulkSetOrder(ctx context.Context, plan []ordering.OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orderPlan = plan
	return nil
}

func (m *mockVideoRepository) recordedPlan() []ordering.OrderUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orderPlan
}

func (m *mockVideoRepository) BulkSetDescriptions(ctx context.Context, updates []repository.DescriptionUpdate) error {
	if m.err != nil {
		return m.err
	}
	m.descUpdates = updates
	return nil
}

func (m *mockVideoRepository) MutateQuestions(ctx context.Context, id primitive.ObjectID, mutate repository.QuestionsMutation) error {
	if m.err != nil {
		return m.err
	}
	current := append([]domain.Question(nil), m.questions...)
	next, err := mutate(current)
	if err != nil {
		return err
	}
	m.questions = next
	return nil
}

func (m *mockVideoRepository) UnsetLegacyTitles(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.unsetCount, nil
}

// mockUserRepository is a mock implementation of repository.UserRepository.
type mockUserRepository struct {
	users []domain.User
	err   error
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

// mockAttemptRepository is a mock implementation of repository.AttemptRepository.
type mockAttemptRepository struct {
	attempts []domain.QuizAttempt
	err      error
}

func (m *mockAttemptRepository) GetAll(ctx context.Context) ([]domain.QuizAttempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attempts, nil
}

// mockAdminRepository is a mock implementation of repository.AdminRepository.
type mockAdminRepository struct {
	admin     *domain.Admin
	createErr error
	created   *domain.Admin
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	m.created = admin
	return primitive.NewObjectID(), nil
}

func (m *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if m.admin == nil {
		return nil, repository.ErrNotFound
	}
	return m.admin, nil
}
