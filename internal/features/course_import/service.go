package course_import

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"go-coursecreator/internal/config"
	"go-coursecreator/internal/features/notification"
	"go-coursecreator/internal/features/user"
	"go-coursecreator/internal/observability"

	"go.uber.org/zap"
)

var ErrInvalidAPIKey = errors.New("invalid API key")

type ImportService interface {
	// Authorize checks the shared secret. An unset secret rejects everything.
	Authorize(key string) error
	Import(ctx context.Context, req ImportRequest, archive io.Reader) (*ImportResult, error)
}

type ImportServiceImpl struct {
	Config     *config.Config
	Stager     Stager
	Users      user.UserService
	Shells     CourseShellCreator
	Dispatcher TaskDispatcher
	Notifier   notification.Notifier
	Logger     *zap.Logger
}

func NewImportService(
	cfg *config.Config,
	stager Stager,
	users user.UserService,
	shells CourseShellCreator,
	dispatcher TaskDispatcher,
	notifier notification.NotificationService,
	logger *zap.Logger,
) ImportService {
	return &ImportServiceImpl{
		Config:     cfg,
		Stager:     stager,
		Users:      users,
		Shells:     shells,
		Dispatcher: dispatcher,
		Notifier:   notifier,
		Logger:     logger,
	}
}

func (s *ImportServiceImpl) Authorize(key string) error {
	secret := s.Config.WebhookAPIKey
	if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

// Import stages the archive, creates the course shell and enqueues the
// import. The task's own outcome is not observed here.
func (s *ImportServiceImpl) Import(ctx context.Context, req ImportRequest, archive io.Reader) (*ImportResult, error) {
	stagedPath, err := s.Stager.Stage(req.Filename, archive)
	if err != nil {
		return nil, err
	}

	owner, err := s.Users.ResolveByEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}

	created, err := s.Shells.CreateCourse(ctx, owner.ID, req.CourseKey)
	if err != nil {
		return nil, fmt.Errorf("create course shell: %w", err)
	}
	s.Logger.Info("Created course", zap.String("course", created), zap.String("user_id", owner.ID))

	courseKey := req.CourseKey.String()
	taskID, err := s.Dispatcher.Enqueue(ctx, owner.ID, courseKey, stagedPath, req.Filename, s.Config.NotificationLanguage)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Enqueued course import",
		zap.String("task_id", taskID),
		zap.String("course_key", courseKey),
		zap.String("staged_path", stagedPath))

	s.Notifier.Notify(ctx, notification.Success(
		notification.Recipient{UserID: owner.ID, Email: owner.Email, Org: req.CourseKey.Org},
		courseKey, req.CourseKey.Number))

	return &ImportResult{
		CourseURL: s.Config.CourseURL(courseKey),
		CourseKey: courseKey,
		TaskID:    taskID,
	}, nil
}

func recordImport(result string) {
	observability.CourseImports.WithLabelValues(result).Inc()
}
