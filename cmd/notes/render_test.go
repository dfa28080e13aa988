package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func plainStyles(t *testing.T) styles {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	return newStyles(&bytes.Buffer{})
}

func doc(id, name string) dto.Item {
	return dto.Item{ID: id, Type: dto.ItemTypeDocument, Name: name, CreatedAt: time.Unix(0, 0)}
}

func folder(id, name string, children ...string) dto.Item {
	return dto.Item{ID: id, Type: dto.ItemTypeFolder, Name: name, ItemsIDs: children, CreatedAt: time.Unix(0, 0)}
}

func sampleItems() []dto.Item {
	return []dto.Item{
		folder("f-projects", "Projects", "d-plan", "f-archive"),
		doc("d-plan", "Plan"),
		folder("f-archive", "Archive"),
		doc("d-inbox", "Inbox"),
	}
}

func TestRenderTree(t *testing.T) {
	st := plainStyles(t)
	nodes := tree.Build(sampleItems(), dto.DefaultItemsSort())

	want := "" +
		"├── Inbox\n" +
		"└── Projects/\n" +
		"    ├── Plan\n" +
		"    └── Archive/\n"
	assert.Equal(t, want, renderTree(nodes, st, false))
}

func TestRenderTree_NestedBranches(t *testing.T) {
	st := plainStyles(t)
	items := []dto.Item{
		folder("f-a", "A", "f-b", "d-y"),
		folder("f-b", "B", "d-x"),
		doc("d-x", "X"),
		doc("d-y", "Y"),
		doc("d-z", "Z"),
	}
	nodes := tree.Build(items, dto.DefaultItemsSort())

	want := "" +
		"├── A/\n" +
		"│   ├── B/\n" +
		"│   │   └── X\n" +
		"│   └── Y\n" +
		"└── Z\n"
	assert.Equal(t, want, renderTree(nodes, st, false))
}

func TestRenderTree_IDsAndEmpty(t *testing.T) {
	st := plainStyles(t)

	assert.Equal(t, "(empty)\n", renderTree(nil, st, false))

	nodes := tree.Build([]dto.Item{doc("0123456789abcdef", "Note")}, dto.DefaultItemsSort())
	assert.Equal(t, "└── Note 01234567\n", renderTree(nodes, st, true))
}

func TestHighlight(t *testing.T) {
	st := plainStyles(t)

	assert.Equal(t, "Groceries", highlight("Groceries", []int{0, 3}, st))
	assert.Equal(t, "Plan", highlight("Plan", nil, st))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "01234567", shortID("0123456789"))
}
