package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseTitleRequired = errors.New("course title is required")
	ErrNoFieldsToUpdate    = errors.New("no valid fields to update")
)

// CourseSummary is a course with its derived counts, as shown in the
// course table.
type CourseSummary struct {
	ID             string    `json:"id"`
	TitleAr        string    `json:"titleAr"`
	DescriptionAr  string    `json:"descriptionAr"`
	ImageURL       string    `json:"imageUrl"`
	Instructor     string    `json:"instructor"`
	Published      bool      `json:"published"`
	VideoCount     int       `json:"videoCount"`
	FinalQuizCount int       `json:"finalQuizCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CourseService manages courses and their embedded final quiz.
type CourseService interface {
	ListCourses(ctx context.Context) ([]CourseSummary, error)
	CreateCourse(ctx context.Context, titleAr, descriptionAr, instructor, imageURL string, published bool) (*CourseSummary, error)
	UpdateCourse(ctx context.Context, courseID primitive.ObjectID, update repository.CourseUpdate) error
	DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error

	GetFinalQuiz(ctx context.Context, courseID primitive.ObjectID) (*domain.Course, []domain.Question, error)
	AddFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error
	UpdateFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, index int, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error
	DeleteFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, index int) error
}

// courseService implements the CourseService interface.
type courseService struct {
	courseRepo repository.CourseRepository
	videoRepo  repository.VideoRepository
	logger     *zap.Logger
}

// NewCourseService creates a new instance of courseService.
func NewCourseService(courseRepo repository.CourseRepository, videoRepo repository.VideoRepository, logger *zap.Logger) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		videoRepo:  videoRepo,
		logger:     logger,
	}
}

// ListCourses returns all courses with live video counts. The counts are
// derived by scanning the videos collection, never read from the course
// document.
func (s *courseService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	videoCounts := make(map[string]int, len(courses))
	for _, video := range videos {
		videoCounts[video.CourseID]++
	}

	summaries := make([]CourseSummary, len(courses))
	for i, course := range courses {
		summaries[i] = summarize(&course, videoCounts[course.ID.Hex()])
	}
	return summaries, nil
}

// CreateCourse creates a course with a server-side creation timestamp and
// an empty final quiz.
func (s *courseService) CreateCourse(ctx context.Context, titleAr, descriptionAr, instructor, imageURL string, published bool) (*CourseSummary, error) {
	title := strings.TrimSpace(titleAr)
	if title == "" {
		return nil, ErrCourseTitleRequired
	}

	course := &domain.Course{
		TitleAr:       title,
		DescriptionAr: strings.TrimSpace(descriptionAr),
		Instructor:    strings.TrimSpace(instructor),
		ImageURL:      strings.TrimSpace(imageURL),
		Published:     published,
		FinalQuiz:     []domain.Question{},
	}

	courseID, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = courseID

	summary := summarize(course, 0)
	return &summary, nil
}

// UpdateCourse applies a partial update. An update that touches nothing is
// rejected rather than silently accepted.
func (s *courseService) UpdateCourse(ctx context.Context, courseID primitive.ObjectID, update repository.CourseUpdate) error {
	if update.Empty() {
		return ErrNoFieldsToUpdate
	}
	err := s.courseRepo.Update(ctx, courseID, update)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

// DeleteCourse removes the course document only. Its videos are not
// cascaded and become orphans; the video listing tolerates that.
func (s *courseService) DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error {
	err := s.courseRepo.Delete(ctx, courseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

// GetFinalQuiz returns the course and its embedded final quiz questions.
func (s *courseService) GetFinalQuiz(ctx context.Context, courseID primitive.ObjectID) (*domain.Course, []domain.Question, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, err
	}
	questions := course.FinalQuiz
	if questions == nil {
		questions = []domain.Question{}
	}
	return course, questions, nil
}

// AddFinalQuizQuestion validates the payload and appends it inside the
// repository's transactional read-modify-write.
func (s *courseService) AddFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error {
	question, err := ValidateQuestion(questionAr, optionsAr, correctAnswerAr, score)
	if err != nil {
		return err
	}
	return s.mapFinalQuizError(s.courseRepo.MutateFinalQuiz(ctx, courseID, appendQuestion(question)))
}

// UpdateFinalQuizQuestion replaces the question at index.
func (s *courseService) UpdateFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, index int, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error {
	question, err := ValidateQuestion(questionAr, optionsAr, correctAnswerAr, score)
	if err != nil {
		return err
	}
	return s.mapFinalQuizError(s.courseRepo.MutateFinalQuiz(ctx, courseID, replaceQuestionAt(index, question)))
}

// DeleteFinalQuizQuestion removes the question at index. Subsequent
// questions shift down one position.
func (s *courseService) DeleteFinalQuizQuestion(ctx context.Context, courseID primitive.ObjectID, index int) error {
	return s.mapFinalQuizError(s.courseRepo.MutateFinalQuiz(ctx, courseID, removeQuestionAt(index)))
}

func (s *courseService) mapFinalQuizError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

func summarize(course *domain.Course, videoCount int) CourseSummary {
	return CourseSummary{
		ID:             course.ID.Hex(),
		TitleAr:        course.TitleAr,
		DescriptionAr:  course.DescriptionAr,
		ImageURL:       course.ImageURL,
		Instructor:     course.Instructor,
		Published:      course.Published,
		VideoCount:     videoCount,
		FinalQuizCount: len(course.FinalQuiz),
		CreatedAt:      course.CreatedAt,
	}
}
