// Package tree projects the flat item list of a workspace into the nested
// structure shown to the user.
package tree

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/dimitrije/notes/pkg/dto"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node is an item together with its resolved children. Children is non-nil
// for folders (possibly empty) and nil for documents.
type Node struct {
	dto.Item
	Children []*Node
}

func newNode(item dto.Item) *Node {
	n := &Node{Item: item.Clone()}
	switch item.Type {
	case dto.ItemTypeFolder:
		n.Children = []*Node{}
	case dto.ItemTypeDocument:
	}
	return n
}

func (n Node) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(n.Item)
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case dto.ItemTypeFolder:
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		if fields["children"], err = json.Marshal(children); err != nil {
			return nil, err
		}
		return json.Marshal(fields)
	default:
		return raw, nil
	}
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var item dto.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}

	var nested struct {
		Children []*Node `json:"children"`
	}
	if item.Type == dto.ItemTypeFolder {
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		if nested.Children == nil {
			nested.Children = []*Node{}
		}
	}

	*n = Node{Item: item, Children: nested.Children}
	return nil
}

// Build returns the root nodes of items ordered by sort. Folder children keep
// the order stored in the folder's ItemsIDs and are not re-sorted. Ids that do
// not resolve to an item are skipped, as are references back to a folder that
// is already being expanded on the current path.
func Build(items []dto.Item, sort dto.ItemsSort) []*Node {
	byID := make(map[string]*dto.Item, len(items))
	referenced := make(map[string]bool)

	for i := range items {
		item := &items[i]
		byID[item.ID] = item

		switch item.Type {
		case dto.ItemTypeFolder:
			for _, id := range item.ItemsIDs {
				referenced[id] = true
			}
		case dto.ItemTypeDocument:
		}
	}

	roots := make([]*Node, 0, len(items))
	for i := range items {
		if referenced[items[i].ID] {
			continue
		}
		roots = append(roots, expand(items[i], byID))
	}

	Sort(roots, sort)
	return roots
}

type frame struct {
	node *Node
	next int
}

func expand(root dto.Item, byID map[string]*dto.Item) *Node {
	top := newNode(root)
	if root.Type != dto.ItemTypeFolder {
		return top
	}

	stack := []frame{{node: top}}
	expanding := map[string]bool{root.ID: true}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next >= len(f.node.ItemsIDs) {
			delete(expanding, f.node.ID)
			stack = stack[:len(stack)-1]
			continue
		}

		id := f.node.ItemsIDs[f.next]
		f.next++

		child, ok := byID[id]
		if !ok || expanding[id] {
			continue
		}

		node := newNode(*child)
		f.node.Children = append(f.node.Children, node)

		switch child.Type {
		case dto.ItemTypeFolder:
			expanding[id] = true
			stack = append(stack, frame{node: node})
		case dto.ItemTypeDocument:
		}
	}

	return top
}

// Sort orders nodes in place. The sort is stable, so nodes with equal keys
// keep their relative order.
func Sort(nodes []*Node, sort dto.ItemsSort) {
	sort = sort.WithDefaults()
	cmp := comparator(sort.Field)

	slices.SortStableFunc(nodes, func(a, b *Node) int {
		c := cmp(a, b)
		if sort.Direction == dto.SortDesc {
			return -c
		}
		return c
	})
}

func comparator(field dto.SortField) func(a, b *Node) int {
	switch field {
	case dto.SortByName:
		col := collate.New(language.Und)
		return func(a, b *Node) int {
			return col.CompareString(a.Name, b.Name)
		}
	case dto.SortByCreatedAt:
		return func(a, b *Node) int {
			return instant(a.CreatedAt).Compare(instant(b.CreatedAt))
		}
	case dto.SortByUpdatedAt:
		return func(a, b *Node) int {
			return instant(a.UpdatedAt).Compare(instant(b.UpdatedAt))
		}
	default:
		return func(a, b *Node) int { return 0 }
	}
}

var epoch = time.Unix(0, 0)

// instant treats a missing timestamp as the Unix epoch.
func instant(t time.Time) time.Time {
	if t.IsZero() {
		return epoch
	}
	return t
}

// Walk visits nodes depth-first in display order.
func Walk(nodes []*Node, fn func(n *Node, depth int)) {
	var visit func(ns []*Node, depth int)
	visit = func(ns []*Node, depth int) {
		for _, n := range ns {
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}
	visit(nodes, 0)
}
