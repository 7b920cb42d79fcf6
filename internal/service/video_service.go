package service

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/domain"
	"madrasa/course-admin/internal/ordering"
	"madrasa/course-admin/internal/repository"
)

// --- Error Definitions ---
var (
	ErrVideoNotFound       = errors.New("video not found")
	ErrVideoFieldsRequired = errors.New("missing required fields or invalid youtube link")
	ErrInvalidYouTubeID    = errors.New("invalid youtube video link or id")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCourseIDRequired    = errors.New("missing course id")
)

// How long a fire-and-forget reindex may run after the triggering request
// has already been answered.
const reindexTimeout = 30 * time.Second

// VideoSummary is a video row as shown in the admin tables.
type VideoSummary struct {
	ID             string `json:"id"`
	VideoID        string `json:"videoId"`
	TitleAr        string `json:"titleAr"`
	Description    string `json:"description"`
	Order          int    `json:"order"`
	CourseID       string `json:"courseId"`
	QuestionsCount int    `json:"questionsCount"`
}

// VideoPatch is a partial update request for one video. RawVideoID accepts
// a bare YouTube id or any common YouTube URL form.
type VideoPatch struct {
	RawVideoID  *string
	TitleAr     *string
	Description *string
	Order       *int
}

// VideoService manages videos, their dense per-course ordering, and their
// embedded quiz questions.
type VideoService interface {
	ListVideos(ctx context.Context, courseID string) ([]VideoSummary, error)
	CourseVideos(ctx context.Context, courseID string) ([]VideoSummary, error)
	CreateVideo(ctx context.Context, courseID, rawVideoID, titleAr, description string, order int) error
	UpdateVideo(ctx context.Context, videoID primitive.ObjectID, patch VideoPatch) error
	DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error
	Reindex(ctx context.Context, courseID string) error

	GetQuestions(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, []domain.Question, error)
	AddQuestion(ctx context.Context, videoID primitive.ObjectID, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error
	UpdateQuestion(ctx context.Context, videoID primitive.ObjectID, index int, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error
	DeleteQuestion(ctx context.Context, videoID primitive.ObjectID, index int) error
}

// videoService implements the VideoService interface.
type videoService struct {
	videoRepo repository.VideoRepository
	logger    *zap.Logger
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo repository.VideoRepository, logger *zap.Logger) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		logger:    logger,
	}
}

// ListVideos returns every video, or the videos of one course when courseID
// is non-empty. No ordering guarantees and no gap repair; this is the raw
// cross-course listing.
func (s *videoService) ListVideos(ctx context.Context, courseID string) ([]VideoSummary, error) {
	var (
		videos []domain.Video
		err    error
	)
	if courseID != "" {
		videos, err = s.videoRepo.GetByCourseID(ctx, courseID)
	} else {
		videos, err = s.videoRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return mapVideoSummaries(videos), nil
}

// CourseVideos returns one course's videos for display, sorted by order.
// When the persisted orders have drifted from the dense 1..N sequence, a
// repair is fired in the background and a locally renumbered view is
// returned immediately; the read never waits on the repair, and a failed
// repair is retried naturally on the next gapped read.
func (s *videoService) CourseVideos(ctx context.Context, courseID string) ([]VideoSummary, error) {
	if courseID == "" {
		return nil, ErrCourseIDRequired
	}
	videos, err := s.videoRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if ordering.HasGap(videos) {
		s.logger.Info("video order gap detected, scheduling reindex",
			zap.String("courseId", courseID),
			zap.Int("videos", len(videos)),
		)
		go s.reindexInBackground(courseID)
	}

	return mapVideoSummaries(ordering.Renumber(videos)), nil
}

// reindexInBackground repairs the persisted order with its own context; the
// triggering request has usually completed by the time this runs.
func (s *videoService) reindexInBackground(courseID string) {
	ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
	defer cancel()

	if err := s.Reindex(ctx, courseID); err != nil {
		s.logger.Warn("background reindex failed",
			zap.String("courseId", courseID),
			zap.Error(err),
		)
	}
}

// CreateVideo validates the YouTube reference and appends the video to the
// course. An order of zero or less means "append at the end": the next
// dense rank is computed from the course's current videos.
func (s *videoService) CreateVideo(ctx context.Context, courseID, rawVideoID, titleAr, description string, order int) error {
	courseID = strings.TrimSpace(courseID)
	youtubeID := ParseYouTubeID(rawVideoID)
	titleAr = strings.TrimSpace(titleAr)
	if courseID == "" || youtubeID == "" || titleAr == "" {
		return ErrVideoFieldsRequired
	}

	if order <= 0 {
		existing, err := s.videoRepo.GetByCourseID(ctx, courseID)
		if err != nil {
			return err
		}
		order = ordering.NextOrder(existing)
	}

	video := &domain.Video{
		CourseID:      courseID,
		YouTubeID:     youtubeID,
		TitleAr:       titleAr,
		Description:   strings.TrimSpace(description),
		DescriptionAr: strings.TrimSpace(description),
		Order:         order,
		Questions:     []domain.Question{},
	}

	_, err := s.videoRepo.Create(ctx, video)
	return err
}

// UpdateVideo applies a partial update. A supplied video id must parse to a
// valid YouTube id, and a supplied description must not be blank.
func (s *videoService) UpdateVideo(ctx context.Context, videoID primitive.ObjectID, patch VideoPatch) error {
	update := repository.VideoUpdate{Order: patch.Order}

	if patch.RawVideoID != nil {
		parsed := ParseYouTubeID(*patch.RawVideoID)
		if parsed == "" {
			return ErrInvalidYouTubeID
		}
		update.YouTubeID = &parsed
	}
	if patch.TitleAr != nil {
		trimmed := strings.TrimSpace(*patch.TitleAr)
		update.TitleAr = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return ErrDescriptionRequired
		}
		update.Description = &trimmed
	}

	if update.Empty() {
		return ErrNoFieldsToUpdate
	}

	err := s.videoRepo.Update(ctx, videoID, update)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// DeleteVideo removes a video. The course's remaining orders now have a
// gap; the next course listing detects and repairs it.
func (s *videoService) DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error {
	err := s.videoRepo.Delete(ctx, videoID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// Reindex rewrites the order field of every video in the course to its
// 1-based position under (order asc, id asc). Reindexing an already-dense
// course rewrites the same values; the operation is idempotent.
func (s *videoService) Reindex(ctx context.Context, courseID string) error {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return ErrCourseIDRequired
	}
	videos, err := s.videoRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return err
	}
	return s.videoRepo.BulkSetOrder(ctx, ordering.ReindexPlan(videos))
}

// GetQuestions returns the video and its embedded questions.
func (s *videoService) GetQuestions(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, []domain.Question, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrVideoNotFound
		}
		return nil, nil, err
	}
	questions := video.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	return video, questions, nil
}

// AddQuestion validates and appends a question inside the repository's
// transactional read-modify-write.
func (s *videoService) AddQuestion(ctx context.Context, videoID primitive.ObjectID, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error {
	question, err := ValidateQuestion(questionAr, optionsAr, correctAnswerAr, score)
	if err != nil {
		return err
	}
	return s.mapQuestionError(s.videoRepo.MutateQuestions(ctx, videoID, appendQuestion(question)))
}

// UpdateQuestion replaces the question at index.
func (s *videoService) UpdateQuestion(ctx context.Context, videoID primitive.ObjectID, index int, questionAr string, optionsAr []string, correctAnswerAr string, score float64) error {
	question, err := ValidateQuestion(questionAr, optionsAr, correctAnswerAr, score)
	if err != nil {
		return err
	}
	return s.mapQuestionError(s.videoRepo.MutateQuestions(ctx, videoID, replaceQuestionAt(index, question)))
}

// DeleteQuestion removes the question at index. Indices cached before this
// call point at different questions afterwards.
func (s *videoService) DeleteQuestion(ctx context.Context, videoID primitive.ObjectID, index int) error {
	return s.mapQuestionError(s.videoRepo.MutateQuestions(ctx, videoID, removeQuestionAt(index)))
}

func (s *videoService) mapQuestionError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

func mapVideoSummaries(videos []domain.Video) []VideoSummary {
	summaries := make([]VideoSummary, len(videos))
	for i, video := range videos {
		description := video.Description
		if description == "" {
			description = video.DescriptionAr
		}
		summaries[i] = VideoSummary{
			ID:             video.ID.Hex(),
			VideoID:        video.YouTubeID,
			TitleAr:        video.TitleAr,
			Description:    description,
			Order:          video.Order,
			CourseID:       video.CourseID,
			QuestionsCount: len(video.Questions),
		}
	}
	return summaries
}

// youtubeIDPattern matches a bare 11-character YouTube video id.
var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var (
	youtubeQueryPattern = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`)
	youtubeShortPattern = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`)
	youtubePathPattern  = regexp.MustCompile(`(?:shorts|embed|live)/([A-Za-z0-9_-]{11})`)
	schemePattern       = regexp.MustCompile(`(?i)^https?://`)
)

// ParseYouTubeID extracts the 11-character video id from a bare id or any
// of the usual YouTube URL shapes (watch?v=, youtu.be/, shorts/, embed/,
// live/). An empty string means the input carried no usable id.
func ParseYouTubeID(value string) string {
	input := strings.TrimSpace(value)
	if youtubeIDPattern.MatchString(input) {
		return input
	}

	for _, pattern := range []*regexp.Regexp{youtubeQueryPattern, youtubeShortPattern, youtubePathPattern} {
		if match := pattern.FindStringSubmatch(input); match != nil {
			return match[1]
		}
	}

	normalized := input
	if !schemePattern.MatchString(normalized) {
		normalized = "https://" + normalized
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")

	if host == "youtu.be" {
		candidate := strings.SplitN(strings.TrimPrefix(parsed.Path, "/"), "/", 2)[0]
		if youtubeIDPattern.MatchString(candidate) {
			return candidate
		}
		return ""
	}

	if strings.HasSuffix(host, "youtube.com") {
		if queryID := parsed.Query().Get("v"); youtubeIDPattern.MatchString(queryID) {
			return queryID
		}
		parts := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
		if len(parts) >= 2 && (parts[0] == "shorts" || parts[0] == "embed" || parts[0] == "live") {
			if youtubeIDPattern.MatchString(parts[1]) {
				return parts[1]
			}
		}
	}

	return ""
}
