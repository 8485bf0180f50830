package course_import

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-coursecreator/internal/config"
)

// Stager writes uploaded archives to the local staging directory where the
// import worker picks them up.
type Stager interface {
	Stage(filename string, r io.Reader) (string, error)
	Cleanup(olderThan time.Duration) (int, error)
}

type DirStager struct {
	Dir string
	now func() time.Time
}

func NewDirStager(cfg *config.Config) Stager {
	return &DirStager{Dir: cfg.StagingDir, now: time.Now}
}

// Stage writes the archive under its original base name. An existing file
// with the same name is replaced.
func (s *DirStager) Stage(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging dir: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close staged file: %w", err)
	}
	return path, nil
}

// Cleanup removes staged archives last modified before now-olderThan
func (s *DirStager) Cleanup(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), archiveExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
