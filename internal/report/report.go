// Package report renders search progress and outcomes for a terminal.
package report

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/alvmarrod/wiki-hops/internal/search"
)

const statsColWidth = 35

// Reporter writes human-readable output to a writer.
// It implements search.Observer.
type Reporter struct {
	out        io.Writer
	siteName   string
	targetName string
}

// New creates a reporter. siteName is used in validation messages and the
// target URL's last segment names the target in results.
func New(out io.Writer, siteName, targetURL string) *Reporter {
	return &Reporter{
		out:        out,
		siteName:   siteName,
		targetName: ArticleName(targetURL),
	}
}

// ArticleName returns the human form of an article URL's title segment
func ArticleName(articleURL string) string {
	name := path.Base(articleURL)
	if u, err := url.Parse(articleURL); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return strings.ReplaceAll(name, "_", " ")
}

// HopCompleted prints the statistics block of one hop
func (r *Reporter) HopCompleted(s search.HopStats) {
	fmt.Fprintf(r.out, "Statistics for %d hop(s):\n", s.Hop)
	fmt.Fprintf(r.out, "%-*s %d\n", statsColWidth, "Number of URLs seen so far:", s.Seen)
	fmt.Fprintf(r.out, "%-*s %d\n", statsColWidth, "Number of URLs to explore next hop:", s.NextFrontier)
	fmt.Fprintln(r.out)
}

// Explored prints the number of URLs discovered by the search
func (r *Reporter) Explored(n int) {
	fmt.Fprintf(r.out, "Explored %d URLs\n\n", n)
}

// Found prints the path, one URL per line, followed by its hop count
func (r *Reporter) Found(p *search.Path) {
	header := fmt.Sprintf("Found a path to %s:", r.targetName)
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out, strings.Repeat("-", len(header)))
	fmt.Fprintln(r.out)
	for _, id := range p.IDs() {
		fmt.Fprintln(r.out, id)
	}
	fmt.Fprintf(r.out, "%d hops\n", p.Hops())
}

// NotFound prints the failure message for an exhausted search
func (r *Reporter) NotFound(maxHops int) {
	fmt.Fprintf(r.out, "Couldn't find a path to %s in %d hops\n", r.targetName, maxHops)
}

// InvalidStart prints the rejection of a start URL outside the site
func (r *Reporter) InvalidStart(startURL string) {
	fmt.Fprintf(r.out, "The site [%s] isn't a %s page\n", startURL, r.siteName)
}

// Interrupted prints the clean shutdown message
func (r *Reporter) Interrupted() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Keyboard interrupt during execution, shutting down...")
}
