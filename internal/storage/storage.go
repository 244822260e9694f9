package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"campmate/internal/models"
)

// ImageStore is the image-hosting collaborator. Filename is the host-side
// object key and is what campground documents reference.
type ImageStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error)
	Delete(ctx context.Context, filename string) error
}

const maxImageSize = 5 << 20

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// validateImageUpload checks extension and size before anything is sent to
// the host. Returns the lowercased extension and its content type.
func validateImageUpload(filename string, size int64) (string, string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == "" {
		return "", "", fmt.Errorf("image file extension is required")
	}
	contentType, ok := allowedExtensions[extension]
	if !ok {
		return "", "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if size > maxImageSize {
		return "", "", fmt.Errorf("image file too large (max 5MB)")
	}
	return extension, contentType, nil
}
