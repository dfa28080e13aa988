package main

import (
	"strings"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
	"github.com/sahilm/fuzzy"
)

type findResult struct {
	Item           dto.Item
	Path           string
	MatchedIndexes []int
	Score          int
}

// itemNames implements fuzzy.Source over item names.
type itemNames []dto.Item

func (n itemNames) String(i int) string {
	return n[i].Name
}

func (n itemNames) Len() int {
	return len(n)
}

// findItems fuzzy-matches query against the names of all items in the tree,
// best match first. Each result carries the folder path it was first seen at.
func findItems(nodes []*tree.Node, query string) []findResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	paths := map[string]string{}
	var list itemNames
	var stack []string
	tree.Walk(nodes, func(n *tree.Node, depth int) {
		stack = append(stack[:depth], n.Name)
		if _, seen := paths[n.ID]; seen {
			return
		}
		paths[n.ID] = strings.Join(stack[:depth], "/")
		list = append(list, n.Item)
	})

	matches := fuzzy.FindFrom(query, list)
	results := make([]findResult, len(matches))
	for i, m := range matches {
		results[i] = findResult{
			Item:           list[m.Index],
			Path:           paths[list[m.Index].ID],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
