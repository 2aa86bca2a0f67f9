package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores an uploaded file and returns an opaque reference to it.
// Errors propagate to the caller unmodified; the orchestration layer does not
// catch them, so a failing upload aborts the whole request.
type Uploader interface {
	Upload(file multipart.File, header *multipart.FileHeader) (string, error)
}

// allowedExtensions restricts avatar uploads to common image types.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// DiskUploader writes files under Dir with uuid-based names, preserving the
// original extension. The returned reference is relative to Dir.
type DiskUploader struct {
	Dir string
}

func NewDiskUploader(dir string) *DiskUploader { return &DiskUploader{Dir: dir} }

func (d *DiskUploader) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("upload %q: unsupported file type %q", header.Filename, ext)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: create dir: %w", err)
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("upload: write file: %w", err)
	}
	return name, nil
}
