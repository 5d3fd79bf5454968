package links

import (
	"strings"
)

// Normalize converts a raw href into an absolute article URL.
// Only site-relative hrefs under the article prefix qualify; absolute URLs,
// protocol-relative URLs and fragments are rejected.
func (e *Extractor) Normalize(href string) (string, bool) {
	if !strings.HasPrefix(href, e.prefix) {
		return "", false
	}
	if e.IsExcluded(href) {
		return "", false
	}
	return e.origin + href, true
}

// IsExcluded checks if an href matches any excluded pattern
func (e *Extractor) IsExcluded(href string) bool {
	for _, pattern := range e.excluded {
		if pattern.MatchString(href) {
			return true
		}
	}
	return false
}
