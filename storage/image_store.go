package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxImageBytes is the largest image accepted for upload.
const MaxImageBytes = 5 * 1024 * 1024

var (
	ErrNotImage      = errors.New("only image files can be uploaded")
	ErrImageTooLarge = errors.Errorf("images must be %dMB or smaller", MaxImageBytes/1024/1024)
)

// ImageStore accepts image uploads and returns their public urls.
type ImageStore interface {
	Upload(ctx context.Context, fileName string, contentType string, body io.Reader) (url string, err error)
}

// ValidateImageUpload checks the declared content type and size of an upload.
func ValidateImageUpload(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

// imageKey names uploads by a random id, keeping only the file extension from
// the user supplied name.
func imageKey(fileName string) string {
	return "images/" + uuid.New().String() + strings.ToLower(path.Ext(fileName))
}
