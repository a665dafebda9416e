package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// imageContentTypes maps the accepted profile image extensions to their
// MIME types.
var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ErrUnsupportedType is returned when a file's extension is not in the
// accepted image set.
var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// DiskStore stores uploaded files on the local filesystem under a single
// directory, each file named by a fresh UUID so uploads never collide.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir, creating the directory
// if it does not exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes data to a new file whose extension is taken from the
// original file name. It returns the stored path relative to the
// process working directory.
func (s *DiskStore) Save(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return path, nil
}

// ContentType returns the MIME type for a stored file path, or an empty
// string when the extension is unknown.
func ContentType(path string) string {
	return imageContentTypes[strings.ToLower(filepath.Ext(path))]
}

// Remove deletes a stored file. A missing file is not an error, the
// record pointing at it is already being replaced or destroyed.
func (s *DiskStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}
