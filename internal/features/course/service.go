package course

import (
	"context"

	"go-coursecreator/internal/features/aicc"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type CourseService interface {
	ListCourses(ctx context.Context, q ListQuery) ([]map[string]any, error)
	GetCourse(ctx context.Context, id string) (*aicc.Response, error)
	GetTaskStatus(ctx context.Context, course string) (*aicc.Response, error)
}

type CourseServiceImpl struct {
	Client aicc.Client
	Logger *zap.Logger

	// concurrent list requests share one upstream fetch
	fetches singleflight.Group
}

func NewCourseService(client aicc.Client, logger *zap.Logger) CourseService {
	return &CourseServiceImpl{
		Client: client,
		Logger: logger,
	}
}

// ListCourses fetches the whole collection and filters, sorts and
// reshapes it locally.
func (s *CourseServiceImpl) ListCourses(ctx context.Context, q ListQuery) ([]map[string]any, error) {
	v, err, shared := s.fetches.Do("list", func() (any, error) {
		return s.Client.ListCourses(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.Logger.Debug("Shared upstream course listing between requests")
	}
	courses := v.([]aicc.Course)

	filtered := FilterCourses(courses, q)
	sorted, err := SortCourses(filtered, q.Ordering)
	if err != nil {
		s.Logger.Warn("Error sorting courses, returning unsorted", zap.String("ordering", q.Ordering), zap.Error(err))
	}

	out := make([]map[string]any, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, Reshape(c))
	}
	return out, nil
}

func (s *CourseServiceImpl) GetCourse(ctx context.Context, id string) (*aicc.Response, error) {
	return s.Client.GetCourse(ctx, id)
}

func (s *CourseServiceImpl) GetTaskStatus(ctx context.Context, course string) (*aicc.Response, error) {
	return s.Client.GetTaskStatus(ctx, course)
}
