package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-coursecreator/internal/config"
	"go-coursecreator/internal/features/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEmailService struct {
	mu    sync.Mutex
	Sent  []email.Message
	Err   error
	Panic bool
}

func (m *MockEmailService) SendEmail(ctx context.Context, msg email.Message) error {
	if m.Panic {
		panic("smtp exploded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return m.Err
}

func testConfig() *config.Config {
	return &config.Config{
		PlatformName:         "BlendX",
		ReplyToEmail:         "contact@blend-ed.com",
		LMSRootURL:           "https://lms.example.com",
		EnableCourseEmails:   true,
		NotificationLanguage: "en",
	}
}

func newTestService(cfg *config.Config, mail *MockEmailService) *NotificationServiceImpl {
	return NewNotificationService(cfg, mail, zap.NewNop()).(*NotificationServiceImpl)
}

var alice = Recipient{UserID: "42", Email: "alice@example.com", Org: "orgA"}

func TestRenderEveryMessageType(t *testing.T) {
	for msgType := range renderers {
		r, err := Render(msgType, map[string]any{"course_topic": "Rust", "course_name": "Rust 101"})
		require.NoError(t, err, msgType)
		assert.NotEmpty(t, r.Subject, msgType)
		assert.NotEmpty(t, r.Body, msgType)
	}
}

func TestRenderUnknownType(t *testing.T) {
	_, err := Render(MessageType("course_deleted"), nil)
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestParamsIncludePlatformSettings(t *testing.T) {
	svc := newTestService(testConfig(), &MockEmailService{})

	p := svc.Params(Success(alice, "course-v1:orgA+101+2024", "Intro"))

	assert.Equal(t, "BlendX", p["platform_name"])
	assert.Equal(t, "contact@blend-ed.com", p["reply_to_email"])
	assert.Equal(t, "https://lms.example.com/dashboard", p["dashboard_url"])
	assert.Equal(t, "https://lms.example.com", p["homepage_url"])
	assert.Equal(t, "Course Creator", p["full_name"])
	assert.Equal(t, "42", p["user_id"])
	assert.Equal(t, "alice@example.com", p["email_address"])
	assert.Equal(t, "course_creation_success", p["message_type"])
	assert.Equal(t, "https://lms.example.com/courses/course-v1:orgA+101+2024/course/", p["course_url"])
}

func TestSendDeliversRenderedEmail(t *testing.T) {
	mail := &MockEmailService{}
	svc := newTestService(testConfig(), mail)

	err := svc.Send(context.Background(), Failure(alice, "Rust", "upstream timed out"))
	require.NoError(t, err)

	require.Len(t, mail.Sent, 1)
	msg := mail.Sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.To)
	assert.Equal(t, "contact@blend-ed.com", msg.ReplyTo)
	assert.Equal(t, "course_creation_failure", msg.MessageType)
	assert.Equal(t, "orgA", msg.Org)
	assert.Contains(t, msg.Subject, "Rust")
	assert.Contains(t, msg.Body, "upstream timed out")
}

func TestSendSkippedWhenDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableCourseEmails = false
	mail := &MockEmailService{}
	svc := newTestService(cfg, mail)

	require.NoError(t, svc.Send(context.Background(), Progress(alice, "Rust", "started")))
	assert.Empty(t, mail.Sent)
}

func TestSendRequiresRecipient(t *testing.T) {
	svc := newTestService(testConfig(), &MockEmailService{})
	err := svc.Send(context.Background(), StructureGenerated(Recipient{UserID: "1"}, "Rust"))
	assert.Error(t, err)
}

func TestNotifySwallowsErrors(t *testing.T) {
	mail := &MockEmailService{Err: errors.New("smtp down")}
	svc := newTestService(testConfig(), mail)

	svc.Notify(context.Background(), Progress(alice, "Rust", "started"))
	svc.Wait()

	assert.Len(t, mail.Sent, 1)
}

func TestNotifyRecoversPanic(t *testing.T) {
	svc := newTestService(testConfig(), &MockEmailService{Panic: true})

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), Progress(alice, "Rust", "started"))
		svc.Wait()
	})
}

func TestNotifySurvivesCancelledContext(t *testing.T) {
	mail := &MockEmailService{}
	svc := newTestService(testConfig(), mail)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Notify(ctx, StructureGenerated(alice, "Rust"))
	svc.Wait()

	assert.Len(t, mail.Sent, 1)
}
