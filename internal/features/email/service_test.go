package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"go-coursecreator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockEmailRepo struct {
	Created  []*Email
	Statuses []EmailStatus
}

func (m *MockEmailRepo) Create(ctx context.Context, email *Email) error {
	email.ID = primitive.NewObjectID()
	m.Created = append(m.Created, email)
	return nil
}

func (m *MockEmailRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status EmailStatus, errorMsg string) error {
	m.Statuses = append(m.Statuses, status)
	return nil
}

func TestSendEmailRecordsStatus(t *testing.T) {
	repo := &MockEmailRepo{}
	var gotAddr string
	var gotMsg []byte
	svc := &EmailServiceImpl{
		Config: &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 25, SMTPFrom: "noreply@example.com"},
		Repo:   repo,
		Logger: zap.NewNop(),
		SendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotMsg = addr, msg
			return nil
		},
	}

	err := svc.SendEmail(context.Background(), Message{
		To:      []string{"a@example.com"},
		ReplyTo: "help@example.com",
		Subject: "Hello",
		Body:    "Body text",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:25", gotAddr)
	assert.True(t, strings.Contains(string(gotMsg), "Reply-To: help@example.com\r\n"))
	assert.True(t, strings.Contains(string(gotMsg), "Subject: Hello\r\n"))
	require.Len(t, repo.Created, 1)
	assert.Equal(t, []EmailStatus{EmailSent}, repo.Statuses)
}

func TestSendEmailFailure(t *testing.T) {
	repo := &MockEmailRepo{}
	svc := &EmailServiceImpl{
		Config: &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 25},
		Repo:   repo,
		Logger: zap.NewNop(),
		SendMail: func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		},
	}

	err := svc.SendEmail(context.Background(), Message{To: []string{"a@example.com"}})
	assert.Error(t, err)
	assert.Equal(t, []EmailStatus{EmailFailed}, repo.Statuses)
}

func TestSendEmailNeedsConfig(t *testing.T) {
	svc := &EmailServiceImpl{Config: &config.Config{}, Logger: zap.NewNop()}

	assert.Error(t, svc.SendEmail(context.Background(), Message{To: []string{"a@example.com"}}))
	assert.Error(t, svc.SendEmail(context.Background(), Message{}))
}
