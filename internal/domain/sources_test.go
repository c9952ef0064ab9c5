package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupCitations(t *testing.T) {
	got := GroupCitations([]Citation{
		{Doc: "a", Page: 2},
		{Doc: "a", Page: 1},
		{Doc: "a", Page: 2},
	})

	assert.Equal(t, []CitationGroup{{Doc: "a", Pages: []int{1, 2}}}, got)
}

func TestGroupCitationsFirstSeenOrder(t *testing.T) {
	got := GroupCitations([]Citation{
		{Doc: "b.pdf", Page: 9},
		{Doc: "a.pdf", Page: 3},
		{Doc: "b.pdf", Page: 1},
		{Doc: "c.pdf", Page: 5},
	})

	assert.Equal(t, []CitationGroup{
		{Doc: "b.pdf", Pages: []int{1, 9}},
		{Doc: "a.pdf", Pages: []int{3}},
		{Doc: "c.pdf", Pages: []int{5}},
	}, got)
}

func TestGroupCitationsEmpty(t *testing.T) {
	assert.Empty(t, GroupCitations(nil))
	assert.Empty(t, GroupCitations([]Citation{}))
}

func TestGroupCitationsIdempotent(t *testing.T) {
	in := []Citation{
		{Doc: "x", Page: 4},
		{Doc: "y", Page: 2},
		{Doc: "x", Page: 4},
		{Doc: "x", Page: 1},
	}

	once := GroupCitations(in)
	again := GroupCitations(FlattenGroups(once))

	assert.Equal(t, once, again)
}
