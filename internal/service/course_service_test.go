package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/repository"
)

func newCourseService(courseRepo *mockCourseRepository, videoRepo *mockVideoRepository) CourseService {
	return NewCourseService(courseRepo, videoRepo, zap.NewNop())
}

func TestCourseService_ListCourses(t *testing.T) {
	courseA := domain.Course{ID: primitive.NewObjectID(), TitleAr: "أساسيات", FinalQuiz: []domain.Question{{QuestionAr: "q"}}, CreatedAt: time.Now()}
	courseB := domain.Course{ID: primitive.NewObjectID(), TitleAr: "متقدم"}

	courseRepo := &mockCourseRepository{courses: []domain.Course{courseA, courseB}}
	videoRepo := &mockVideoRepository{videos: []domain.Video{
		{ID: primitive.NewObjectID(), CourseID: courseA.ID.Hex()},
		{ID: primitive.NewObjectID(), CourseID: courseA.ID.Hex()},
		{ID: primitive.NewObjectID(), CourseID: "orphaned-course"},
	}}

	summaries, err := newCourseService(courseRepo, videoRepo).ListCourses(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].VideoCount)
	assert.Equal(t, 1, summaries[0].FinalQuizCount)
	assert.Equal(t, 0, summaries[1].VideoCount)
}

func TestCourseService_CreateCourse(t *testing.T) {
	courseRepo := &mockCourseRepository{}
	svc := newCourseService(courseRepo, &mockVideoRepository{})

	summary, err := svc.CreateCourse(context.Background(), "  دورة جديدة  ", "وصف", "أستاذ", "", true)

	assert.NoError(t, err)
	assert.Equal(t, "دورة جديدة", summary.TitleAr)
	assert.True(t, summary.Published)
	assert.Equal(t, 0, summary.VideoCount)
	assert.Equal(t, 0, summary.FinalQuizCount)
}

func TestCourseService_CreateCourse_TitleRequired(t *testing.T) {
	svc := newCourseService(&mockCourseRepository{}, &mockVideoRepository{})

	_, err := svc.CreateCourse(context.Background(), "   ", "", "", "", false)

	assert.ErrorIs(t, err, ErrCourseTitleRequired)
}

func TestCourseService_UpdateCourse(t *testing.T) {
	title := "عنوان جديد"

	t.Run("empty update rejected", func(t *testing.T) {
		svc := newCourseService(&mockCourseRepository{}, &mockVideoRepository{})
		err := svc.UpdateCourse(context.Background(), primitive.NewObjectID(), repository.CourseUpdate{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("not found mapped", func(t *testing.T) {
		svc := newCourseService(&mockCourseRepository{err: repository.ErrNotFound}, &mockVideoRepository{})
		err := svc.UpdateCourse(context.Background(), primitive.NewObjectID(), repository.CourseUpdate{TitleAr: &title})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("update forwarded", func(t *testing.T) {
		courseRepo := &mockCourseRepository{}
		svc := newCourseService(courseRepo, &mockVideoRepository{})
		err := svc.UpdateCourse(context.Background(), primitive.NewObjectID(), repository.CourseUpdate{TitleAr: &title})
		assert.NoError(t, err)
		assert.Equal(t, &title, courseRepo.lastUpdate.TitleAr)
	})
}

func TestCourseService_DeleteCourse_NotFound(t *testing.T) {
	svc := newCourseService(&mockCourseRepository{err: repository.ErrNotFound}, &mockVideoRepository{})

	err := svc.DeleteCourse(context.Background(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_GetFinalQuiz(t *testing.T) {
	t.Run("nil quiz comes back as empty list", func(t *testing.T) {
		course := &domain.Course{ID: primitive.NewObjectID(), TitleAr: "دورة"}
		svc := newCourseService(&mockCourseRepository{course: course}, &mockVideoRepository{})

		_, questions, err := svc.GetFinalQuiz(context.Background(), course.ID)

		assert.NoError(t, err)
		assert.NotNil(t, questions)
		assert.Empty(t, questions)
	})

	t.Run("missing course", func(t *testing.T) {
		svc := newCourseService(&mockCourseRepository{}, &mockVideoRepository{})

		_, _, err := svc.GetFinalQuiz(context.Background(), primitive.NewObjectID())

		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_FinalQuizMutations(t *testing.T) {
	courseID := primitive.NewObjectID()
	existing := []domain.Question{
		{QuestionAr: "q0", OptionsAr: []string{"a", "b"}, CorrectAnswerAr: "a", Score: 1},
		{QuestionAr: "q1", OptionsAr: []string{"a", "b"}, CorrectAnswerAr: "b", Score: 2},
		{QuestionAr: "q2", OptionsAr: []string{"a", "b"}, CorrectAnswerAr: "a", Score: 3},
	}

	t.Run("add appends", func(t *testing.T) {
		courseRepo := &mockCourseRepository{finalQuiz: append([]domain.Question(nil), existing...)}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.AddFinalQuizQuestion(context.Background(), courseID, "q3", []string{"x", "y"}, "x", 5)

		assert.NoError(t, err)
		assert.Len(t, courseRepo.finalQuiz, 4)
		assert.Equal(t, "q3", courseRepo.finalQuiz[3].QuestionAr)
	})

	t.Run("add rejects invalid payload before touching the store", func(t *testing.T) {
		courseRepo := &mockCourseRepository{finalQuiz: append([]domain.Question(nil), existing...)}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.AddFinalQuizQuestion(context.Background(), courseID, "q3", []string{"x", "y"}, "z", 5)

		assert.ErrorIs(t, err, ErrQuestionAnswerInvalid)
		assert.Len(t, courseRepo.finalQuiz, 3)
	})

	t.Run("update replaces at index", func(t *testing.T) {
		courseRepo := &mockCourseRepository{finalQuiz: append([]domain.Question(nil), existing...)}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.UpdateFinalQuizQuestion(context.Background(), courseID, 1, "replaced", []string{"x", "y"}, "y", 4)

		assert.NoError(t, err)
		assert.Equal(t, "replaced", courseRepo.finalQuiz[1].QuestionAr)
		assert.Equal(t, "q2", courseRepo.finalQuiz[2].QuestionAr)
	})

	t.Run("delete shifts later questions down", func(t *testing.T) {
		courseRepo := &mockCourseRepository{finalQuiz: append([]domain.Question(nil), existing...)}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.DeleteFinalQuizQuestion(context.Background(), courseID, 1)

		assert.NoError(t, err)
		assert.Len(t, courseRepo.finalQuiz, 2)
		assert.Equal(t, "q0", courseRepo.finalQuiz[0].QuestionAr)
		assert.Equal(t, "q2", courseRepo.finalQuiz[1].QuestionAr)
	})

	t.Run("stale index aborts", func(t *testing.T) {
		courseRepo := &mockCourseRepository{finalQuiz: append([]domain.Question(nil), existing...)}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.DeleteFinalQuizQuestion(context.Background(), courseID, 7)

		assert.ErrorIs(t, err, ErrQuestionIndexInvalid)
		assert.Len(t, courseRepo.finalQuiz, 3)
	})

	t.Run("missing course mapped", func(t *testing.T) {
		courseRepo := &mockCourseRepository{err: repository.ErrNotFound}
		svc := newCourseService(courseRepo, &mockVideoRepository{})

		err := svc.DeleteFinalQuizQuestion(context.Background(), courseID, 0)

		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_ListCourses_RepoError(t *testing.T) {
	boom := errors.New("scan failed")
	svc := newCourseService(&mockCourseRepository{err: boom}, &mockVideoRepository{})

	_, err := svc.ListCourses(context.Background())

	assert.ErrorIs(t, err, boom)
}
