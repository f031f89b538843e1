package static

import (
	"path"
	"strings"
)

// DefaultMIMEType is returned for unknown or missing extensions.
const DefaultMIMEType = "application/octet-stream"

var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".txt":  "text/plain",
}

// MIMEType returns the content type for name based on its suffix.
// Matching is case-insensitive; no content sniffing is performed.
func MIMEType(name string) string {
	if name == "" {
		return DefaultMIMEType
	}
	if t, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return t
	}
	return DefaultMIMEType
}
