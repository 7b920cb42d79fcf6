package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"madrasa/course-admin/internal/repository"
)

// Default description applied when a video has no usable fallback text.
const defaultVideoDescriptionAr = "هذا الفيديو هو جزء من سلسلة دروس لتعلم اللغة العربية. شاهد الفيديو كاملاً قبل الانتقال إلى الاختبار."

// BackfillReport summarizes a description backfill run.
type BackfillReport struct {
	TotalVideos int `json:"totalVideos"`
	Updated     int `json:"updated"`
	Skipped     int `json:"skipped"`
}

// LegacyTitleReport summarizes a legacy-title cleanup run.
type LegacyTitleReport struct {
	CoursesUpdated int64 `json:"coursesUpdated"`
	VideosUpdated  int64 `json:"videosUpdated"`
}

// MaintenanceService holds one-off data repair operations for documents
// imported from the previous backend.
type MaintenanceService interface {
	// BackfillVideoDescriptions fills missing description fields from the
	// best available fallback, or the default Arabic text.
	BackfillVideoDescriptions(ctx context.Context) (*BackfillReport, error)
	// RemoveLegacyTitles strips the abandoned English title fields from
	// courses and videos.
	RemoveLegacyTitles(ctx context.Context) (*LegacyTitleReport, error)
}

// maintenanceService implements the MaintenanceService interface.
type maintenanceService struct {
	courseRepo repository.CourseRepository
	videoRepo  repository.VideoRepository
	logger     *zap.Logger
}

// NewMaintenanceService creates a new instance of maintenanceService.
func NewMaintenanceService(courseRepo repository.CourseRepository, videoRepo repository.VideoRepository, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{
		courseRepo: courseRepo,
		videoRepo:  videoRepo,
		logger:     logger,
	}
}

func (s *maintenanceService) BackfillVideoDescriptions(ctx context.Context) (*BackfillReport, error) {
	videos, err := s.videoRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var updates []repository.DescriptionUpdate
	for _, video := range videos {
		description := strings.TrimSpace(video.Description)
		descriptionAr := strings.TrimSpace(video.DescriptionAr)
		if description != "" && descriptionAr != "" {
			continue
		}

		fallback := description
		if fallback == "" {
			fallback = descriptionAr
		}
		if fallback == "" {
			fallback = strings.TrimSpace(video.TitleAr)
		}
		if fallback == "" {
			fallback = defaultVideoDescriptionAr
		}
		updates = append(updates, repository.DescriptionUpdate{ID: video.ID, Description: fallback})
	}

	if len(updates) > 0 {
		if err := s.videoRepo.BulkSetDescriptions(ctx, updates); err != nil {
			return nil, err
		}
	}

	s.logger.Info("video description backfill completed",
		zap.Int("totalVideos", len(videos)),
		zap.Int("updated", len(updates)),
	)
	return &BackfillReport{
		TotalVideos: len(videos),
		Updated:     len(updates),
		Skipped:     len(videos) - len(updates),
	}, nil
}

func (s *maintenanceService) RemoveLegacyTitles(ctx context.Context) (*LegacyTitleReport, error) {
	coursesUpdated, err := s.courseRepo.UnsetLegacyTitles(ctx)
	if err != nil {
		return nil, err
	}
	videosUpdated, err := s.videoRepo.UnsetLegacyTitles(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("legacy title cleanup completed",
		zap.Int64("coursesUpdated", coursesUpdated),
		zap.Int64("videosUpdated", videosUpdated),
	)
	return &LegacyTitleReport{
		CoursesUpdated: coursesUpdated,
		VideosUpdated:  videosUpdated,
	}, nil
}
