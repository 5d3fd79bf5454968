package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathAppendSharesPrefix(t *testing.T) {
	root := NewPath("S")
	a := root.Append("A")
	b := root.Append("B")
	ac := a.Append("C")

	assert.Equal(t, []string{"S"}, root.IDs())
	assert.Equal(t, []string{"S", "A"}, a.IDs())
	assert.Equal(t, []string{"S", "B"}, b.IDs())
	assert.Equal(t, []string{"S", "A", "C"}, ac.IDs())

	assert.Equal(t, "C", ac.Last())
	assert.Equal(t, 3, ac.Len())
	assert.Equal(t, 2, ac.Hops())
	assert.Equal(t, 0, root.Hops())
}

func TestNilPath(t *testing.T) {
	var p *Path
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Hops())
	assert.Empty(t, p.IDs())
}

func TestSeenSetAndFrontier(t *testing.T) {
	seen := NewSeenSet()
	assert.True(t, seen.Add("A"))
	assert.False(t, seen.Add("A"))
	assert.True(t, seen.Has("A"))
	assert.False(t, seen.Has("B"))
	assert.Equal(t, 1, seen.Len())

	f := NewFrontier()
	assert.True(t, f.IsEmpty())
	f.Push(NewPath("A"))
	f.Push(NewPath("B"))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "B", f.Paths()[1].Last())
}
