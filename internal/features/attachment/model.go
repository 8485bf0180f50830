package attachment

import (
	"math"
	"strings"
	"time"
)

// Attachment describes one uploaded file. Ownership (UserID, Org) is fixed at
// creation; only Description changes afterwards.
type Attachment struct {
	ID            int64     `json:"id" bson:"_id"`
	UserID        string    `json:"-" bson:"user_id"`
	Username      string    `json:"username" bson:"username"`
	Org           string    `json:"org" bson:"org"`
	Filename      string    `json:"filename" bson:"filename"`
	FilePath      string    `json:"file_path" bson:"file_path"`
	FileSize      int64     `json:"file_size" bson:"file_size"`
	FileType      string    `json:"file_type" bson:"file_type"`
	FileExtension string    `json:"file_extension" bson:"file_extension"`
	Description   string    `json:"description" bson:"description"`
	Created       time.Time `json:"created" bson:"created"`
	Modified      time.Time `json:"modified" bson:"modified"`
}

// FileSizeMB is the size in MiB rounded to two decimals
func (a *Attachment) FileSizeMB() float64 {
	return math.Round(float64(a.FileSize)/(1024*1024)*100) / 100
}

func (a *Attachment) IsSupportedFormat() bool {
	return IsSupportedExtension(strings.ToLower(a.FileExtension))
}

// AttachmentDetail is the full representation returned by upload, get and patch
type AttachmentDetail struct {
	ID                int64     `json:"id"`
	Filename          string    `json:"filename"`
	FilePath          string    `json:"file_path"`
	FileSize          int64     `json:"file_size"`
	FileSizeMB        float64   `json:"file_size_mb"`
	FileType          string    `json:"file_type"`
	FileExtension     string    `json:"file_extension"`
	Description       string    `json:"description"`
	Org               string    `json:"org"`
	Username          string    `json:"username"`
	IsSupportedFormat bool      `json:"is_supported_format"`
	FileURL           string    `json:"file_url,omitempty"`
	Created           time.Time `json:"created"`
	Modified          time.Time `json:"modified"`
}

// AttachmentListItem is the compact representation used by list
type AttachmentListItem struct {
	ID                int64     `json:"id"`
	Filename          string    `json:"filename"`
	FilePath          string    `json:"file_path"`
	FileSizeMB        float64   `json:"file_size_mb"`
	FileType          string    `json:"file_type"`
	FileExtension     string    `json:"file_extension"`
	Description       string    `json:"description"`
	IsSupportedFormat bool      `json:"is_supported_format"`
	FileURL           string    `json:"file_url"`
	Created           time.Time `json:"created"`
}

func (a *Attachment) ToDetail(fileURL string) AttachmentDetail {
	return AttachmentDetail{
		ID:                a.ID,
		Filename:          a.Filename,
		FilePath:          a.FilePath,
		FileSize:          a.FileSize,
		FileSizeMB:        a.FileSizeMB(),
		FileType:          a.FileType,
		FileExtension:     a.FileExtension,
		Description:       a.Description,
		Org:               a.Org,
		Username:          a.Username,
		IsSupportedFormat: a.IsSupportedFormat(),
		FileURL:           fileURL,
		Created:           a.Created,
		Modified:          a.Modified,
	}
}

func (a *Attachment) ToListItem(fileURL string) AttachmentListItem {
	return AttachmentListItem{
		ID:                a.ID,
		Filename:          a.Filename,
		FilePath:          a.FilePath,
		FileSizeMB:        a.FileSizeMB(),
		FileType:          a.FileType,
		FileExtension:     a.FileExtension,
		Description:       a.Description,
		IsSupportedFormat: a.IsSupportedFormat(),
		FileURL:           fileURL,
		Created:           a.Created,
	}
}

// BulkDeleteResult reports a best-effort batch delete
type BulkDeleteResult struct {
	DeletedCount    int     `json:"deleted_count"`
	FailedDeletions []int64 `json:"failed_deletions,omitempty"`
}
