package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go-coursecreator/internal/config"

	"go.uber.org/zap"
)

// Message is one outgoing plain-text email
type Message struct {
	To          []string
	ReplyTo     string
	Subject     string
	Body        string
	MessageType string
	Org         string
}

type EmailService interface {
	SendEmail(ctx context.Context, msg Message) error
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailServiceImpl struct {
	Config   *config.Config
	Repo     EmailRepository
	Logger   *zap.Logger
	SendMail SendFunc
}

func NewEmailService(cfg *config.Config, repo EmailRepository, logger *zap.Logger) EmailService {
	return &EmailServiceImpl{
		Config:   cfg,
		Repo:     repo,
		Logger:   logger,
		SendMail: smtp.SendMail,
	}
}

func (s *EmailServiceImpl) SendEmail(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("no recipients")
	}
	if s.Config.SMTPHost == "" || s.Config.SMTPPort == 0 {
		return errors.New("invalid email configuration: missing host or port")
	}

	addr := fmt.Sprintf("%s:%d", s.Config.SMTPHost, s.Config.SMTPPort)
	from := s.Config.SMTPFrom
	if from == "" {
		from = s.Config.SMTPUser
	}

	var auth smtp.Auth
	if s.Config.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.Config.SMTPUser, s.Config.SMTPPassword, s.Config.SMTPHost)
	}

	record := &Email{
		Org:         msg.Org,
		From:        from,
		To:          msg.To,
		ReplyTo:     msg.ReplyTo,
		Subject:     msg.Subject,
		Body:        msg.Body,
		MessageType: msg.MessageType,
		Status:      EmailQueued,
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, record); err != nil {
			s.Logger.Warn("Failed to record email", zap.Error(err))
		}
	}

	s.Logger.Debug("Sending email", zap.Strings("to", msg.To), zap.String("addr", addr), zap.String("type", msg.MessageType))
	err := s.SendMail(addr, auth, from, msg.To, buildMessage(from, msg))

	status, errMsg := EmailSent, ""
	if err != nil {
		status, errMsg = EmailFailed, err.Error()
	}
	if s.Repo != nil && !record.ID.IsZero() {
		if uerr := s.Repo.UpdateStatus(ctx, record.ID, status, errMsg); uerr != nil {
			s.Logger.Warn("Failed to update email status", zap.Error(uerr))
		}
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)
	buf.WriteString("\r\n")
	return buf.Bytes()
}
