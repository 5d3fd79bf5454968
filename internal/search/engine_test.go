package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alvmarrod/wiki-hops/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graph is a synthetic site: each page's content is its own URL, and the
// extractor looks the outgoing links up in the adjacency list.
type graph map[string][]string

func (g graph) Extract(content string) []string {
	return g[content]
}

// serve returns a fetcher over g and a pointer to the fetch log
func (g graph) serve() (fetcher.Fetcher, *[]string) {
	var fetched []string
	f := fetcher.FetcherFunc(func(_ context.Context, pageURL string) (string, error) {
		fetched = append(fetched, pageURL)
		return pageURL, nil
	})
	return f, &fetched
}

func (g graph) hasEdge(from, to string) bool {
	for _, l := range g[from] {
		if l == to {
			return true
		}
	}
	return false
}

type statsRecorder struct {
	stats []HopStats
}

func (r *statsRecorder) HopCompleted(s HopStats) {
	r.stats = append(r.stats, s)
}

func TestSearchStartIsTarget(t *testing.T) {
	f := fetcher.FetcherFunc(func(context.Context, string) (string, error) {
		t.Fatal("no page should be fetched")
		return "", nil
	})
	rec := &statsRecorder{}
	e := New(f, graph{}, "T", WithObserver(rec))

	res, err := e.Search(context.Background(), "T")
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, []string{"T"}, res.Path.IDs())
	assert.Equal(t, 0, res.Hops())
	assert.Equal(t, 0, res.Explored)
	assert.Empty(t, rec.stats)
}

func TestSearchScenario(t *testing.T) {
	g := graph{
		"S": {"A", "B"},
		"A": {"T"},
		"B": {"A", "T"},
	}
	f, fetched := g.serve()
	rec := &statsRecorder{}

	res, err := New(f, g, "T", WithObserver(rec)).Search(context.Background(), "S")
	require.NoError(t, err)

	assert.Equal(t, []string{"S", "A", "T"}, res.Path.IDs())
	assert.Equal(t, 2, res.Hops())
	assert.Equal(t, 2, res.Explored, "the target itself is not counted")
	assert.Equal(t, []HopStats{{Hop: 1, Seen: 2, NextFrontier: 2, Expanded: 1}}, rec.stats)
	assert.Equal(t, []string{"S", "A"}, *fetched, "search stops at the first hit")
}

func TestSearchPrefersFewestHops(t *testing.T) {
	g := graph{
		"S": {"A", "B"},
		"A": {"C"},
		"C": {"D"},
		"D": {"T"},
		"B": {"E"},
		"E": {"T"},
	}
	f, _ := g.serve()

	res, err := New(f, g, "T").Search(context.Background(), "S")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "B", "E", "T"}, res.Path.IDs())
}

func TestSearchDeduplicatesWithinHop(t *testing.T) {
	g := graph{
		"S": {"A", "B"},
		"A": {"C"},
		"B": {"C"},
		"C": {"D"},
	}
	f, fetched := g.serve()
	rec := &statsRecorder{}

	res, err := New(f, g, "T", WithObserver(rec)).Search(context.Background(), "S")
	require.NoError(t, err)
	assert.False(t, res.Found())

	require.GreaterOrEqual(t, len(rec.stats), 2)
	assert.Equal(t, 3, rec.stats[1].Seen, "C counted once")
	assert.Equal(t, 1, rec.stats[1].NextFrontier, "C expanded once")
	assert.Equal(t, []string{"S", "A", "B", "C", "D"}, *fetched)
}

func TestSearchUnreachable(t *testing.T) {
	// S is not seeded into the seen-set, so A rediscovers it
	g := graph{
		"S": {"A", "B"},
		"A": {"S", "C"},
		"B": {"C"},
		"C": nil,
	}
	f, fetched := g.serve()
	rec := &statsRecorder{}

	res, err := New(f, g, "T", WithObserver(rec)).Search(context.Background(), "S")
	require.NoError(t, err)

	assert.False(t, res.Found())
	assert.Nil(t, res.Path)
	assert.Equal(t, 0, res.Hops())
	assert.Equal(t, 4, res.Explored)
	assert.Equal(t, []HopStats{
		{Hop: 1, Seen: 2, NextFrontier: 2, Expanded: 1},
		{Hop: 2, Seen: 4, NextFrontier: 2, Expanded: 2},
		{Hop: 3, Seen: 4, NextFrontier: 0, Expanded: 2},
	}, rec.stats)
	assert.Equal(t, []string{"S", "A", "B", "S", "C"}, *fetched)
}

func chain(n int) graph {
	g := graph{}
	prev := "S"
	for i := 1; i <= n; i++ {
		node := fmt.Sprintf("N%d", i)
		g[prev] = []string{node}
		prev = node
	}
	g[prev] = []string{"T"}
	return g
}

func TestSearchHopLimit(t *testing.T) {
	g := chain(10) // S -> N1 -> ... -> N10 -> T, 11 hops

	t.Run("limit too small", func(t *testing.T) {
		f, _ := g.serve()
		rec := &statsRecorder{}
		e := New(f, g, "T", WithMaxHops(5), WithObserver(rec))
		assert.Equal(t, 5, e.MaxHops())

		res, err := e.Search(context.Background(), "S")
		require.NoError(t, err)
		assert.False(t, res.Found())
		assert.Equal(t, 5, res.Explored)
		assert.Len(t, rec.stats, 5)
	})

	t.Run("limit reached exactly", func(t *testing.T) {
		f, _ := g.serve()
		res, err := New(f, g, "T", WithMaxHops(11)).Search(context.Background(), "S")
		require.NoError(t, err)
		assert.Equal(t, 11, res.Hops())
		assert.Equal(t, 10, res.Explored)
	})

	t.Run("default limit", func(t *testing.T) {
		f, _ := g.serve()
		e := New(f, g, "T", WithMaxHops(0))
		assert.Equal(t, DefaultMaxHops, e.MaxHops())
	})
}

// shortest computes reference hop distances with a plain BFS
func shortest(g graph, start, target string) int {
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g[cur] {
			if next == target {
				return dist[cur] + 1
			}
			if _, ok := dist[next]; !ok {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return -1
}

func TestSearchRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		nodes := 5 + rng.Intn(40)
		g := graph{}
		for n := 0; n < nodes; n++ {
			from := fmt.Sprintf("P%d", n)
			for k := rng.Intn(4); k > 0; k-- {
				g[from] = append(g[from], fmt.Sprintf("P%d", rng.Intn(nodes)))
			}
		}
		target := fmt.Sprintf("P%d", nodes-1)
		want := shortest(g, "P0", target)

		f, _ := g.serve()
		res, err := New(f, g, target).Search(context.Background(), "P0")
		require.NoError(t, err)

		if want < 0 {
			assert.False(t, res.Found(), "graph %d: target unreachable", i)
			continue
		}
		require.True(t, res.Found(), "graph %d: expected a path of %d hops", i, want)
		assert.Equal(t, want, res.Hops(), "graph %d", i)

		ids := res.Path.IDs()
		assert.Equal(t, "P0", ids[0])
		assert.Equal(t, target, ids[len(ids)-1])
		for j := 1; j < len(ids); j++ {
			assert.True(t, g.hasEdge(ids[j-1], ids[j]), "graph %d: edge %s -> %s", i, ids[j-1], ids[j])
		}
	}
}

func TestSearchFetchError(t *testing.T) {
	boom := errors.New("boom")
	g := graph{"S": {"A"}}
	f := fetcher.FetcherFunc(func(_ context.Context, pageURL string) (string, error) {
		if pageURL == "A" {
			return "", boom
		}
		return pageURL, nil
	})

	res, err := New(f, g, "T").Search(context.Background(), "S")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "hop 2")
	assert.Equal(t, 1, res.Explored)
	assert.False(t, res.Found())
}

func TestSearchCancellation(t *testing.T) {
	g := graph{
		"S": {"A", "B", "C"},
		"A": {"D"},
		"B": {"E"},
		"C": {"T"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetched []string
	f := fetcher.FetcherFunc(func(_ context.Context, pageURL string) (string, error) {
		fetched = append(fetched, pageURL)
		if pageURL == "A" {
			cancel()
		}
		return pageURL, nil
	})

	res, err := New(f, g, "T").Search(ctx, "S")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.Found())
	assert.Equal(t, 4, res.Explored)
	assert.Equal(t, []string{"S", "A"}, fetched, "stops at the next fetch boundary")
}

func TestObservers(t *testing.T) {
	a, b := &statsRecorder{}, &statsRecorder{}
	var calls int
	o := Observers(a, nil, b, ObserverFunc(func(HopStats) { calls++ }))

	o.HopCompleted(HopStats{Hop: 1})
	assert.Len(t, a.stats, 1)
	assert.Len(t, b.stats, 1)
	assert.Equal(t, 1, calls)
}
