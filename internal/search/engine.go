// Package search finds the shortest hop path between two articles by
// breadth-first expansion of the link graph, fetching pages as it goes.
package search

import (
	"context"
	"fmt"

	"github.com/alvmarrod/wiki-hops/internal/fetcher"
	"github.com/sirupsen/logrus"
)

// DefaultMaxHops bounds a search when no WithMaxHops option is given
const DefaultMaxHops = 100

// LinkExtractor yields the candidate article URLs of a page
type LinkExtractor interface {
	Extract(content string) []string
}

// Result is the outcome of a search
type Result struct {
	// Path from start to target, nil when the target was not reached.
	Path *Path
	// Explored is the number of distinct URLs seen, not counting the target.
	Explored int
}

// Found reports whether the target was reached
func (r Result) Found() bool {
	return r.Path != nil
}

// Hops returns the hop count of the path, 0 when not found
func (r Result) Hops() int {
	return r.Path.Hops()
}

// Engine runs breadth-first searches towards a fixed target
type Engine struct {
	fetcher   fetcher.Fetcher
	extractor LinkExtractor
	target    string
	maxHops   int
	observer  Observer
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxHops limits the number of hops explored; values < 1 are ignored
func WithMaxHops(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxHops = n
		}
	}
}

// WithObserver registers a receiver for per-hop statistics
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// New creates an engine searching for target
func New(f fetcher.Fetcher, x LinkExtractor, target string, opts ...Option) *Engine {
	e := &Engine{
		fetcher:   f,
		extractor: x,
		target:    target,
		maxHops:   DefaultMaxHops,
		observer:  Observers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxHops returns the hop limit
func (e *Engine) MaxHops() int {
	return e.maxHops
}

// Search expands the link graph from start one hop at a time until the target
// is linked from a frontier page or the hop limit is reached. An exhausted
// search is not an error: it returns a Result with a nil Path.
//
// Errors come only from the fetcher (cancellation, exhausted retries); the
// returned Result then carries the number of URLs explored so far.
func (e *Engine) Search(ctx context.Context, start string) (Result, error) {
	if start == e.target {
		return Result{Path: NewPath(start)}, nil
	}

	seen := NewSeenSet()
	frontier := NewFrontier(NewPath(start))

	for hop := 1; hop <= e.maxHops; hop++ {
		next := NewFrontier()

		for _, path := range frontier.Paths() {
			if err := ctx.Err(); err != nil {
				return Result{Explored: seen.Len()}, err
			}

			content, err := e.fetcher.Fetch(ctx, path.Last())
			if err != nil {
				return Result{Explored: seen.Len()}, fmt.Errorf("failed to expand %s at hop %d: %w", path.Last(), hop, err)
			}

			candidates := e.extractor.Extract(content)
			added := 0
			for _, link := range candidates {
				if link == e.target {
					logrus.Debugf("Target %s linked from %s at hop %d", link, path.Last(), hop)
					return Result{Path: path.Append(link), Explored: seen.Len()}, nil
				}
				if seen.Add(link) {
					next.Push(path.Append(link))
					added++
				}
			}

			logrus.Debugf("Expanded %s: %d links, %d new (hop=%d)", path.Last(), len(candidates), added, hop)
		}

		e.observer.HopCompleted(HopStats{
			Hop:          hop,
			Seen:         seen.Len(),
			NextFrontier: next.Len(),
			Expanded:     frontier.Len(),
		})

		if next.IsEmpty() {
			logrus.Infof("Frontier exhausted after %d hop(s), nothing left to explore", hop)
			break
		}
		frontier = next
	}

	return Result{Explored: seen.Len()}, nil
}
