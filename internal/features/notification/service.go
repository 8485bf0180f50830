package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	common_models "go-coursecreator/internal/common/models"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/features/email"

	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// Notifier is what the course features depend on. Notify never fails the
// caller: delivery happens in the background and errors are only logged.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotificationService interface {
	Notifier
	Send(ctx context.Context, n Notification) error
	Preview(n Notification) (Rendered, error)
	Wait()
}

type NotificationServiceImpl struct {
	Config *config.Config
	Email  email.EmailService
	Logger *zap.Logger

	wg sync.WaitGroup
}

func NewNotificationService(cfg *config.Config, emailService email.EmailService, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		Config: cfg,
		Email:  emailService,
		Logger: logger,
	}
}

// Params merges the platform settings into the notification's own params
func (s *NotificationServiceImpl) Params(n Notification) map[string]any {
	p := map[string]any{
		"user_id":        n.To.UserID,
		"email_address":  n.To.Email,
		"full_name":      "Course Creator",
		"message_type":   string(n.Type),
		"platform_name":  s.Config.PlatformName,
		"reply_to_email": s.Config.ReplyToEmail,
		"homepage_url":   s.Config.LMSRootURL,
		"dashboard_url":  s.Config.DashboardURL(),
		"language":       s.Config.NotificationLanguage,
	}
	if p["user_id"] == "" {
		p["user_id"] = "0"
	}
	for k, v := range n.Params {
		p[k] = v
	}
	if n.Type == CourseCreationSuccess {
		if key, ok := n.Params["course_key"].(string); ok {
			p["course_url"] = s.Config.CourseURL(key)
		}
	}
	return p
}

// Preview renders n with the platform params without sending it
func (s *NotificationServiceImpl) Preview(n Notification) (Rendered, error) {
	return Render(n.Type, s.Params(n))
}

func (s *NotificationServiceImpl) Send(ctx context.Context, n Notification) error {
	if !s.Config.EnableCourseEmails {
		s.Logger.Debug("Course creation emails disabled, skipping", zap.String("type", string(n.Type)))
		return nil
	}
	if n.To.Email == "" {
		return fmt.Errorf("notification %s has no recipient email", n.Type)
	}

	p := s.Params(n)
	rendered, err := Render(n.Type, p)
	if err != nil {
		return err
	}

	s.Logger.Debug("Sending notification",
		zap.String("to", n.To.Email),
		zap.Any("params", common_models.MaskSensitive(p)))

	return s.Email.SendEmail(ctx, email.Message{
		To:          []string{n.To.Email},
		ReplyTo:     s.Config.ReplyToEmail,
		Subject:     rendered.Subject,
		Body:        rendered.Body,
		MessageType: string(n.Type),
		Org:         n.To.Org,
	})
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, n Notification) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.Logger.Error("Panic while sending notification", zap.String("type", string(n.Type)), zap.Any("panic", r))
			}
		}()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := s.Send(sendCtx, n); err != nil {
			s.Logger.Error("Error sending notification",
				zap.String("type", string(n.Type)),
				zap.String("to", n.To.Email),
				zap.Error(err))
		}
	}()
}

// Wait blocks until every in-flight Notify has finished
func (s *NotificationServiceImpl) Wait() {
	s.wg.Wait()
}
