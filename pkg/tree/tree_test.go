package tree

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id, name string) dto.Item {
	return dto.Item{ID: id, Type: dto.ItemTypeDocument, Name: name, UserID: "u1", WorkspaceID: "w1"}
}

func folder(id, name string, children ...string) dto.Item {
	if children == nil {
		children = []string{}
	}
	return dto.Item{ID: id, Type: dto.ItemTypeFolder, Name: name, UserID: "u1", WorkspaceID: "w1", ItemsIDs: children}
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func countByID(nodes []*Node) map[string]int {
	counts := map[string]int{}
	Walk(nodes, func(n *Node, _ int) {
		counts[n.ID]++
	})
	return counts
}

func TestBuild_Empty(t *testing.T) {
	roots := Build(nil, dto.DefaultItemsSort())
	assert.Empty(t, roots)
}

func TestBuild_EveryItemAppearsOnce(t *testing.T) {
	items := []dto.Item{
		folder("f1", "Projects", "d1", "f2"),
		folder("f2", "Archive", "d2"),
		doc("d1", "Plan"),
		doc("d2", "Old plan"),
		doc("d3", "Inbox"),
		folder("f3", "Empty"),
	}

	roots := Build(items, dto.DefaultItemsSort())

	counts := countByID(roots)
	require.Len(t, counts, len(items))
	for _, item := range items {
		assert.Equal(t, 1, counts[item.ID], "item %s", item.ID)
	}
	assert.Equal(t, []string{"Empty", "Inbox", "Projects"}, names(roots))
}

func TestBuild_DanglingReferenceIsSkipped(t *testing.T) {
	items := []dto.Item{
		folder("f1", "Folder", "missing", "d1"),
		doc("d1", "Doc"),
	}

	roots := Build(items, dto.DefaultItemsSort())

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "d1", roots[0].Children[0].ID)
}

func TestBuild_RootSortByName(t *testing.T) {
	items := []dto.Item{doc("1", "b"), doc("2", "a"), doc("3", "c")}

	asc := Build(items, dto.ItemsSort{Field: dto.SortByName, Direction: dto.SortAsc})
	assert.Equal(t, []string{"a", "b", "c"}, names(asc))

	desc := Build(items, dto.ItemsSort{Field: dto.SortByName, Direction: dto.SortDesc})
	assert.Equal(t, []string{"c", "b", "a"}, names(desc))
}

func TestBuild_RootSortByNameIsCaseAware(t *testing.T) {
	items := []dto.Item{doc("1", "beta"), doc("2", "Alpha"), doc("3", "alpha"), doc("4", "Gamma")}

	roots := Build(items, dto.DefaultItemsSort())

	got := names(roots)
	assert.Equal(t, "beta", got[2])
	assert.Equal(t, "Gamma", got[3])
	assert.ElementsMatch(t, []string{"Alpha", "alpha"}, got[:2])
}

func TestBuild_RootSortByTimestamps(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := doc("a", "a")
	a.CreatedAt = base.Add(2 * time.Hour)
	a.UpdatedAt = base
	b := doc("b", "b")
	b.CreatedAt = base
	b.UpdatedAt = base.Add(3 * time.Hour)
	c := doc("c", "c")
	c.CreatedAt = base.Add(time.Hour)
	c.UpdatedAt = base.Add(time.Hour)

	items := []dto.Item{a, b, c}

	byCreated := Build(items, dto.ItemsSort{Field: dto.SortByCreatedAt, Direction: dto.SortAsc})
	assert.Equal(t, []string{"b", "c", "a"}, names(byCreated))

	byUpdatedDesc := Build(items, dto.ItemsSort{Field: dto.SortByUpdatedAt, Direction: dto.SortDesc})
	assert.Equal(t, []string{"b", "c", "a"}, names(byUpdatedDesc))
}

func TestBuild_MissingTimestampSortsAsEpoch(t *testing.T) {
	withTime := doc("t", "timed")
	withTime.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	preEpoch := doc("p", "pre-epoch")
	preEpoch.CreatedAt = time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	missing := doc("m", "missing")

	roots := Build([]dto.Item{withTime, missing, preEpoch}, dto.ItemsSort{Field: dto.SortByCreatedAt, Direction: dto.SortAsc})

	assert.Equal(t, []string{"pre-epoch", "missing", "timed"}, names(roots))
}

func TestBuild_EqualKeysKeepInputOrder(t *testing.T) {
	items := []dto.Item{doc("1", "same"), doc("2", "same"), doc("3", "same")}

	roots := Build(items, dto.DefaultItemsSort())

	ids := []string{roots[0].ID, roots[1].ID, roots[2].ID}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestBuild_NestedOrderIgnoresSort(t *testing.T) {
	items := []dto.Item{
		folder("f", "Folder", "x", "y", "z"),
		doc("x", "zz"),
		doc("y", "aa"),
		doc("z", "mm"),
	}

	for _, sort := range []dto.ItemsSort{
		{Field: dto.SortByName, Direction: dto.SortAsc},
		{Field: dto.SortByName, Direction: dto.SortDesc},
		{Field: dto.SortByCreatedAt, Direction: dto.SortDesc},
	} {
		roots := Build(items, sort)
		require.Len(t, roots, 1)
		children := roots[0].Children
		require.Len(t, children, 3)
		assert.Equal(t, []string{"x", "y", "z"}, []string{children[0].ID, children[1].ID, children[2].ID})
	}
}

func TestBuild_FolderChildrenPresentOnlyForFolders(t *testing.T) {
	roots := Build([]dto.Item{folder("f", "Folder"), doc("d", "Doc")}, dto.DefaultItemsSort())

	require.Len(t, roots, 2)
	assert.Nil(t, roots[0].Children)
	assert.NotNil(t, roots[1].Children)
	assert.Empty(t, roots[1].Children)
}

func TestBuild_CycleIsBroken(t *testing.T) {
	items := []dto.Item{
		folder("root", "Root", "a"),
		folder("a", "A", "b"),
		folder("b", "B", "a", "d"),
		doc("d", "Doc"),
	}

	roots := Build(items, dto.DefaultItemsSort())

	require.Len(t, roots, 1)
	a := roots[0].Children[0]
	require.Equal(t, "a", a.ID)
	b := a.Children[0]
	require.Equal(t, "b", b.ID)
	require.Len(t, b.Children, 1)
	assert.Equal(t, "d", b.Children[0].ID)
}

func TestBuild_SelfReferenceIsDropped(t *testing.T) {
	items := []dto.Item{folder("f", "Loop", "f")}

	roots := Build(items, dto.DefaultItemsSort())

	assert.Empty(t, roots)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	items := []dto.Item{folder("f", "Folder", "d"), doc("d", "Doc")}

	roots := Build(items, dto.DefaultItemsSort())
	roots[0].ItemsIDs[0] = "changed"
	roots[0].Name = "changed"

	assert.Equal(t, "d", items[0].ItemsIDs[0])
	assert.Equal(t, "Folder", items[0].Name)
}

func TestNode_MarshalJSON(t *testing.T) {
	roots := Build([]dto.Item{folder("f", "Folder", "d"), doc("d", "Doc")}, dto.DefaultItemsSort())

	data, err := json.Marshal(roots)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "folder", decoded[0]["type"])

	children, ok := decoded[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	child := children[0].(map[string]any)
	assert.Equal(t, "Doc", child["name"])
	_, hasChildren := child["children"]
	assert.False(t, hasChildren)
}

func TestNode_JSONKeepsChildren(t *testing.T) {
	items := []dto.Item{folder("f", "Folder", "g", "d"), folder("g", "Inner"), doc("d", "Doc")}
	roots := Build(items, dto.DefaultItemsSort())

	data, err := json.Marshal(roots)
	require.NoError(t, err)

	var decoded []*Node
	require.NoError(t, json.Unmarshal(data, &decoded))

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Children, 2)
	assert.NotNil(t, decoded[0].Children[0].Children)
	assert.Empty(t, decoded[0].Children[0].Children)
	assert.Nil(t, decoded[0].Children[1].Children)
}

func TestWalk_Depth(t *testing.T) {
	items := []dto.Item{folder("f", "Folder", "g"), folder("g", "Inner", "d"), doc("d", "Doc")}

	var depths []int
	Walk(Build(items, dto.DefaultItemsSort()), func(_ *Node, depth int) {
		depths = append(depths, depth)
	})

	assert.Equal(t, []int{0, 1, 2}, depths)
}
