package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-coursecreator/internal/observability"

	"go.uber.org/zap"
)

// MaxDescriptionLength bounds the free-text description
const MaxDescriptionLength = 1000

var (
	ErrFileTooLarge        = errors.New("file size cannot exceed 50MB")
	ErrUnsupportedFileType = errors.New("unsupported file type, supported formats: " + strings.Join(SupportedExtensions, ", "))
	ErrDescriptionTooLong  = fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	ErrNoIDs               = errors.New("no attachment ids provided")
)

// UploadInput carries one uploaded file and the caller's identity
type UploadInput struct {
	Filename    string
	Size        int64
	Content     io.Reader
	Description string
	UserID      string
	Username    string
	Org         string
}

type AttachmentService interface {
	Upload(ctx context.Context, in UploadInput) (*Attachment, error)
	List(ctx context.Context, userID, org, fileType string) ([]Attachment, error)
	Get(ctx context.Context, id int64, userID string) (*Attachment, error)
	UpdateDescription(ctx context.Context, id int64, userID, description string) (*Attachment, error)
	Delete(ctx context.Context, id int64, userID string) error
	BulkDelete(ctx context.Context, ids []int64, userID string) (*BulkDeleteResult, error)
	FileURL(a *Attachment) string
}

type AttachmentServiceImpl struct {
	Repo    AttachmentRepository
	Storage Storage
	Logger  *zap.Logger
}

func NewAttachmentService(repo AttachmentRepository, storage Storage, logger *zap.Logger) AttachmentService {
	return &AttachmentServiceImpl{
		Repo:    repo,
		Storage: storage,
		Logger:  logger,
	}
}

// ValidateUpload checks size, extension and description before any write
func ValidateUpload(filename string, size int64, description string) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !IsSupportedExtension(ExtensionOf(filename)) {
		return ErrUnsupportedFileType
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (s *AttachmentServiceImpl) Upload(ctx context.Context, in UploadInput) (*Attachment, error) {
	if err := ValidateUpload(in.Filename, in.Size, in.Description); err != nil {
		observability.AttachmentUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	info := GetFileInfo(in.Filename, in.Size)

	savedPath, err := s.Storage.Save(ctx, StoragePath(in.Org, in.UserID, info.FileExtension), in.Content)
	if err != nil {
		observability.AttachmentUploads.WithLabelValues("error").Inc()
		s.Logger.Error("Error saving attachment file", zap.String("filename", in.Filename), zap.Error(err))
		return nil, fmt.Errorf("save attachment file: %w", err)
	}
	s.Logger.Info("File saved successfully", zap.String("path", savedPath))

	attachment := &Attachment{
		UserID:        in.UserID,
		Username:      in.Username,
		Org:           in.Org,
		Filename:      info.Filename,
		FilePath:      savedPath,
		FileSize:      info.FileSize,
		FileType:      info.FileType,
		FileExtension: info.FileExtension,
		Description:   in.Description,
	}

	if err := s.Repo.Create(ctx, attachment); err != nil {
		observability.AttachmentUploads.WithLabelValues("error").Inc()
		s.Logger.Error("Error creating attachment record", zap.String("path", savedPath), zap.Error(err))
		s.removeStoredFile(ctx, savedPath)
		return nil, fmt.Errorf("create attachment record: %w", err)
	}

	observability.AttachmentUploads.WithLabelValues("success").Inc()
	return attachment, nil
}

func (s *AttachmentServiceImpl) List(ctx context.Context, userID, org, fileType string) ([]Attachment, error) {
	return s.Repo.ListByOwner(ctx, userID, org, fileType)
}

func (s *AttachmentServiceImpl) Get(ctx context.Context, id int64, userID string) (*Attachment, error) {
	return s.Repo.GetOwned(ctx, id, userID)
}

func (s *AttachmentServiceImpl) UpdateDescription(ctx context.Context, id int64, userID, description string) (*Attachment, error) {
	if len([]rune(description)) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return s.Repo.UpdateDescription(ctx, id, userID, description)
}

func (s *AttachmentServiceImpl) Delete(ctx context.Context, id int64, userID string) error {
	attachment, err := s.Repo.GetOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if !s.removeStoredFile(ctx, attachment.FilePath) {
		s.Logger.Warn("Failed to delete file from storage", zap.String("path", attachment.FilePath))
	}

	return s.Repo.Delete(ctx, attachment.ID)
}

// BulkDelete removes every listed attachment the caller owns. Record deletion
// failures are collected, never fatal.
func (s *AttachmentServiceImpl) BulkDelete(ctx context.Context, ids []int64, userID string) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}

	attachments, err := s.Repo.FindOwned(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	if len(attachments) == 0 {
		return nil, ErrAttachmentNotFound
	}

	result := &BulkDeleteResult{}
	for _, a := range attachments {
		if !s.removeStoredFile(ctx, a.FilePath) {
			s.Logger.Warn("Failed to delete file from storage", zap.String("path", a.FilePath))
		}

		if err := s.Repo.Delete(ctx, a.ID); err != nil {
			s.Logger.Error("Error deleting attachment", zap.Int64("attachment_id", a.ID), zap.Error(err))
			result.FailedDeletions = append(result.FailedDeletions, a.ID)
			continue
		}
		result.DeletedCount++
	}

	return result, nil
}

func (s *AttachmentServiceImpl) FileURL(a *Attachment) string {
	return s.Storage.URL(a.FilePath)
}

// removeStoredFile is best effort: it reports whether the object was removed
// and only logs failures.
func (s *AttachmentServiceImpl) removeStoredFile(ctx context.Context, path string) bool {
	exists, err := s.Storage.Exists(ctx, path)
	if err != nil {
		s.Logger.Error("Error checking attachment file", zap.String("path", path), zap.Error(err))
		return false
	}
	if !exists {
		s.Logger.Warn("File not found for deletion", zap.String("path", path))
		return false
	}
	if err := s.Storage.Delete(ctx, path); err != nil {
		s.Logger.Error("Error deleting attachment file", zap.String("path", path), zap.Error(err))
		return false
	}
	s.Logger.Info("File deleted successfully", zap.String("path", path))
	return true
}
