// Package storage writes uploaded post images to the media directory and
// hands back the relative name the post record stores.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const postsSubdir = "posts"

// ImageStore saves uploads under <dir>/posts/.
type ImageStore struct {
	dir string
}

// NewImageStore creates the media directory tree if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, postsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the upload and returns its stored name, shaped
// "posts/<base>_<uuid><ext>" so names never collide and the original
// base name stays recoverable for display.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := path.Ext(file.Filename)
	base := strings.TrimSuffix(path.Base(file.Filename), ext)
	if base == "" {
		base = "image"
	}
	name := path.Join(postsSubdir, fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext))

	dst, err := os.Create(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// URL returns the public path for a stored image name.
func (s *ImageStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return "/media/" + name
}

// Dir returns the root media directory, for static file serving.
func (s *ImageStore) Dir() string {
	return s.dir
}
