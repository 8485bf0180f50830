package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go-coursecreator/internal/config"

	"github.com/google/uuid"
)

// Storage is the backing object store for attachment bytes. Paths are
// slash-separated and relative to the store root.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	URL(name string) string
}

var errUnsafePath = errors.New("path escapes storage root")

// LocalStorage stores files under a directory on local disk
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(cfg *config.Config) Storage {
	if _, err := os.Stat(cfg.FSPath); os.IsNotExist(err) {
		os.MkdirAll(cfg.FSPath, 0755)
	}
	return &LocalStorage{
		Root:    cfg.FSPath,
		BaseURL: strings.TrimRight(cfg.FSURL, "/"),
	}
}

func (s *LocalStorage) resolve(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", errUnsafePath
	}
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	full, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	dst, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (s *LocalStorage) Exists(ctx context.Context, name string) (bool, error) {
	full, err := s.resolve(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) URL(name string) string {
	return s.BaseURL + "/" + strings.TrimPrefix(name, "/")
}

// MaxUploadSize is the largest accepted attachment (50MB)
const MaxUploadSize = 50 * 1024 * 1024

// SupportedExtensions is the whitelist of attachment formats the AI pipeline reads
var SupportedExtensions = []string{
	"pdf", "docx", "doc", "txt", "md", "rtf",
	"pptx", "ppt", "xlsx", "xls", "csv",
}

var fallbackMimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"doc":  "application/msword",
	"txt":  "text/plain",
	"md":   "text/markdown",
	"rtf":  "application/rtf",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"ppt":  "application/vnd.ms-powerpoint",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xls":  "application/vnd.ms-excel",
	"csv":  "text/csv",
}

func IsSupportedExtension(ext string) bool {
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// FileInfo is what we derive from an uploaded file's name and size
type FileInfo struct {
	Filename      string
	FileSize      int64
	FileExtension string
	FileType      string
}

// ExtensionOf returns the lower-cased text after the last dot, or "" when the
// name has no dot.
func ExtensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// GetFileInfo derives MIME type and extension. The system MIME table is tried
// first, then the static table, then application/octet-stream.
func GetFileInfo(filename string, size int64) FileInfo {
	ext := ExtensionOf(filename)

	mimeType := ""
	if ext != "" {
		if detected := mime.TypeByExtension("." + ext); detected != "" {
			if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
				mimeType = mediaType
			}
		}
	}
	if mimeType == "" {
		if fallback, ok := fallbackMimeTypes[ext]; ok {
			mimeType = fallback
		} else {
			mimeType = "application/octet-stream"
		}
	}

	return FileInfo{
		Filename:      filename,
		FileSize:      size,
		FileExtension: ext,
		FileType:      mimeType,
	}
}

// StoragePath builds attachments/{org}/{userID}/att_{token}.{ext}. The random
// token keeps concurrent uploads of the same filename apart.
func StoragePath(org, userID, ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	dir := "attachments/" + org + "/"
	if userID != "" {
		dir += userID + "/"
	}
	return dir + "att_" + token + "." + ext
}
