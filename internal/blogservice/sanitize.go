package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script elements from post content before it is stored.
func sanitizeContent(content string) string {
	return scriptTagPattern.ReplaceAllString(content, "")
}
