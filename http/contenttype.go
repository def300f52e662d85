package httpx

import "strings"

// DefaultContentType is used when no suffix in contentTypes matches.
const DefaultContentType = "application/octet-stream"

// Checked in order, first match wins. Suffixes are case-sensitive.
var contentTypes = []struct {
	suffix string
	mime   string
}{
	{".html", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
}

// ContentType returns the MIME type for name based on its suffix.
func ContentType(name string) string {
	for _, ct := range contentTypes {
		if strings.HasSuffix(name, ct.suffix) {
			return ct.mime
		}
	}
	return DefaultContentType
}
