package utils

import (
	"path"
	"strings"
)

const (
	LocalUploadPrefix = "/uploads/"
	HostedImageMarker = "cloudinary"
)

// NormalizeImageURL prefixes relative image paths with baseURL. Empty values
// and absolute URLs are returned unchanged, so applying it twice is a no-op.
func NormalizeImageURL(baseURL, image string) string {
	if image == "" || strings.HasPrefix(image, "http") {
		return image
	}

	return baseURL + image
}

func IsLocalUpload(image string) bool {
	return strings.HasPrefix(image, LocalUploadPrefix)
}

func IsHostedImage(image string) bool {
	return image != "" && strings.Contains(image, HostedImageMarker)
}

// HostedImagePublicID returns the last path segment of a hosted image URL,
// cut at its first dot, e.g. ".../v17/products/abc123.jpg" gives "abc123".
func HostedImagePublicID(imageURL string) string {
	segment := path.Base(strings.TrimRight(imageURL, "/"))
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}

	return segment
}
