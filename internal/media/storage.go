// Package media stores uploaded question and round assets on disk.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads with an extension outside the
// whitelist.
var ErrUnsupportedType = errors.New("unsupported media type")

// allowedExt maps accepted upload extensions to their content types.
var allowedExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// Storage writes uploaded assets under a single directory with
// uuid-derived names, so original filenames never reach the filesystem.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save stores an upload and returns the generated file name. The write
// goes to a temp file first and is renamed into place so a crashed upload
// never leaves a half-written asset behind.
func (s *Storage) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExt[ext]; !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + ext
	finalPath := filepath.Join(s.dir, name)
	tempPath := finalPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to sync upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to close upload: %w", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to rename upload: %w", err)
	}

	return name, nil
}

// Path resolves a stored asset name to its on-disk path. Names containing
// path separators or traversal are rejected.
func (s *Storage) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", os.ErrNotExist
	}
	p := filepath.Join(s.dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}

// ContentType returns the content type for a stored asset name, or empty
// if unknown.
func ContentType(name string) string {
	return allowedExt[strings.ToLower(filepath.Ext(name))]
}

// URL returns the public URL for a stored asset name; empty in, empty out.
func URL(name string) string {
	if name == "" {
		return ""
	}
	return "/media/" + name
}
