package search

// Path is an immutable walk from the start article to the current node.
// Appending shares the prefix with the parent path.
type Path struct {
	parent *Path
	id     string
	length int
}

// NewPath returns the single-node path containing start
func NewPath(start string) *Path {
	return &Path{id: start, length: 1}
}

// Append returns a new path extending p by id; p is left untouched
func (p *Path) Append(id string) *Path {
	return &Path{parent: p, id: id, length: p.length + 1}
}

// Last returns the identifier at the end of the path
func (p *Path) Last() string {
	return p.id
}

// Len returns the number of nodes, 0 for a nil path
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return p.length
}

// Hops returns the number of edges traversed
func (p *Path) Hops() int {
	if p.Len() == 0 {
		return 0
	}
	return p.length - 1
}

// IDs returns the identifiers from start to end
func (p *Path) IDs() []string {
	ids := make([]string, p.Len())
	for n := p; n != nil; n = n.parent {
		ids[n.length-1] = n.id
	}
	return ids
}
