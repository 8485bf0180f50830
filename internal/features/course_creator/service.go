package course_creator

import (
	"context"
	"encoding/json"
	"fmt"

	"go-coursecreator/internal/features/aicc"
	"go-coursecreator/internal/features/notification"
	"go-coursecreator/internal/features/user"

	"go.uber.org/zap"
)

type CourseCreatorService interface {
	CreateCourse(ctx context.Context, requester *user.User, org string, req CourseRequest) (*aicc.Response, error)
}

type CourseCreatorServiceImpl struct {
	Client   aicc.Client
	Notifier notification.Notifier
	Logger   *zap.Logger
}

func NewCourseCreatorService(client aicc.Client, notifier notification.NotificationService, logger *zap.Logger) CourseCreatorService {
	return &CourseCreatorServiceImpl{
		Client:   client,
		Notifier: notifier,
		Logger:   logger,
	}
}

// CreateCourse forwards req to AICC. Notifications go out on a best-effort
// basis around the call and never change its result.
func (s *CourseCreatorServiceImpl) CreateCourse(ctx context.Context, requester *user.User, org string, req CourseRequest) (*aicc.Response, error) {
	to := notification.Recipient{UserID: requester.ID, Email: requester.Email, Org: org}
	topic := req.Topic()

	s.Notifier.Notify(ctx, notification.Progress(to, topic,
		"Your course creation request has been received and is being processed."))

	s.Logger.Info("Forwarding course request",
		zap.String("user_id", requester.ID),
		zap.String("action", req.Action()),
		zap.String("topic", topic))

	resp, err := s.Client.CreateCourse(ctx, req)
	if err != nil {
		s.Notifier.Notify(ctx, notification.Failure(to, topic, failureMessage(err)))
		return nil, err
	}

	if !resp.OK() {
		s.Logger.Warn("Course request rejected upstream",
			zap.Int("status", resp.StatusCode),
			zap.String("topic", topic))
		s.Notifier.Notify(ctx, notification.Failure(to, topic,
			fmt.Sprintf("The course service responded with status %d.", resp.StatusCode)))
		return resp, nil
	}

	if upstreamStatus(resp) == structureGeneratedStatus {
		s.Notifier.Notify(ctx, notification.StructureGenerated(to, topic))
	}
	return resp, nil
}

func failureMessage(err error) string {
	switch {
	case aicc.IsTimeout(err):
		return "The course service took too long to respond. Please try again later."
	case aicc.IsConnection(err):
		return "The course service could not be reached. Please try again later."
	default:
		return err.Error()
	}
}

func upstreamStatus(resp *aicc.Response) string {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return ""
	}
	return body.Status
}
