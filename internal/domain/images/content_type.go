package images

import (
	"path/filepath"
	"strings"
)

// ContentTypeForPath infers a content type from the file-extension suffix.
// Pure function, used for presentation only.
func ContentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
