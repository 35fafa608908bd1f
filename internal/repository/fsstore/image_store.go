package fsstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore writes uploaded image files into a local directory and deletes
// them again. Stored names are unique; the original filename is kept as a
// readable suffix.
type ImageStore struct {
	dir string
}

// NewImageStore creates the image directory if needed and returns the store.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory image files are stored in.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the content to a new file and returns the stored filename.
// The random component keeps two uploads of the same filename in the same
// millisecond from colliding.
func (s *ImageStore) Save(filename string, content io.Reader) (string, error) {
	stored := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], sanitizeFilename(filename))

	f, err := os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file %s: %w", stored, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file %s: %w", stored, err)
	}

	return stored, nil
}

// Remove deletes a stored file. Missing files are reported via os.IsNotExist
// so callers can treat them as a warning rather than a failure.
func (s *ImageStore) Remove(filename string) error {
	return os.Remove(filepath.Join(s.dir, sanitizeFilename(filename)))
}

// sanitizeFilename strips any path components so a crafted filename cannot
// escape the image directory.
func sanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}
