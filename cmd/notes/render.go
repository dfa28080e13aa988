package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
)

type styles struct {
	Folder   lipgloss.Style
	Document lipgloss.Style
	Branch   lipgloss.Style
	Active   lipgloss.Style
	ID       lipgloss.Style
	Empty    lipgloss.Style
	Match    lipgloss.Style
}

// newStyles builds styles for w. Writers that are not terminals get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}

	return styles{
		Folder:   r.NewStyle().Bold(true).Foreground(accent),
		Document: r.NewStyle().Foreground(primary),
		Branch:   r.NewStyle().Foreground(subtle),
		Active:   r.NewStyle().Bold(true).Foreground(accent),
		ID:       r.NewStyle().Foreground(subtle),
		Empty:    r.NewStyle().Italic(true).Foreground(subtle),
		Match:    r.NewStyle().Underline(true),
	}
}

// renderTree draws nodes with box-drawing branches. Folders end in a slash.
// With showIDs each line carries a short item id.
func renderTree(nodes []*tree.Node, st styles, showIDs bool) string {
	if len(nodes) == 0 {
		return st.Empty.Render("(empty)") + "\n"
	}

	var b strings.Builder
	var draw func(ns []*tree.Node, prefix string)
	draw = func(ns []*tree.Node, prefix string) {
		for i, n := range ns {
			last := i == len(ns)-1
			branch, indent := "├── ", "│   "
			if last {
				branch, indent = "└── ", "    "
			}
			b.WriteString(st.Branch.Render(prefix + branch))
			b.WriteString(nodeLabel(n.Item, st))
			if showIDs {
				b.WriteString(" " + st.ID.Render(shortID(n.ID)))
			}
			b.WriteString("\n")
			draw(n.Children, prefix+indent)
		}
	}
	draw(nodes, "")
	return b.String()
}

func nodeLabel(item dto.Item, st styles) string {
	if item.Type == dto.ItemTypeFolder {
		return st.Folder.Render(item.Name + "/")
	}
	return st.Document.Render(item.Name)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// highlight renders the runes of s starting at the matched byte offsets with
// the match style.
func highlight(s string, matched []int, st styles) string {
	if len(matched) == 0 {
		return s
	}
	marks := make(map[int]bool, len(matched))
	for _, i := range matched {
		marks[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if marks[i] {
			b.WriteString(st.Match.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
