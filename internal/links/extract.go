// Package links turns article markup into absolute in-site article URLs.
package links

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// Extractor selects article links of a single site
type Extractor struct {
	origin   string
	prefix   string
	excluded []*regexp.Regexp
}

// NewExtractor creates an extractor for hrefs starting with prefix,
// made absolute by prepending origin. Hrefs matching any of excluded are
// dropped.
func NewExtractor(origin, prefix string, excluded ...*regexp.Regexp) *Extractor {
	return &Extractor{
		origin:   strings.TrimSuffix(origin, "/"),
		prefix:   prefix,
		excluded: excluded,
	}
}

// Extract returns the article links of content in document order.
// Duplicates are kept; anchors without href are skipped.
func (e *Extractor) Extract(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		logrus.Debugf("Failed to parse page content: %v", err)
		return nil
	}

	var links []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		if link, ok := e.Normalize(href); ok {
			links = append(links, link)
		}
	})
	return links
}
