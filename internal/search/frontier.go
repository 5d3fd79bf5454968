package search

// SeenSet holds every identifier discovered during one search
type SeenSet struct {
	ids map[string]struct{}
}

// NewSeenSet creates an empty seen-set
func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[string]struct{})}
}

// Add marks id as seen.
// Returns true if it was new, false if it had been seen before.
func (s *SeenSet) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id has been seen
func (s *SeenSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct identifiers seen
func (s *SeenSet) Len() int {
	return len(s.ids)
}

// Frontier is the ordered set of paths to expand at one hop
type Frontier struct {
	paths []*Path
}

// NewFrontier creates a frontier seeded with the given paths
func NewFrontier(paths ...*Path) *Frontier {
	return &Frontier{paths: paths}
}

// Push appends a path to the end of the frontier
func (f *Frontier) Push(p *Path) {
	f.paths = append(f.paths, p)
}

// Paths returns the paths in insertion order
func (f *Frontier) Paths() []*Path {
	return f.paths
}

// Len returns the number of paths in the frontier
func (f *Frontier) Len() int {
	return len(f.paths)
}

// IsEmpty returns true if nothing is left to expand
func (f *Frontier) IsEmpty() bool {
	return len(f.paths) == 0
}
