package main

import (
	"fmt"
	"strings"

	"github.com/dimitrije/notes/pkg/dto"
	"github.com/dimitrije/notes/pkg/tree"
	"github.com/spf13/cobra"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		sortFlag string
		showIDs  bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the items of the workspace as a tree",
		Long: `Show the items of the workspace as a tree.

Root items follow the workspace sort order. --sort overrides it for this
listing only; use "notes sort" to change the saved order.

Examples:
  notes tree
  notes tree --sort updatedAt:desc --ids`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			nodes := session.Tree()
			if sortFlag != "" {
				sort, err := parseSort(sortFlag)
				if err != nil {
					return err
				}
				nodes = tree.Build(session.Items(), sort)
			}

			st := newStyles(a.out)
			if ws, ok := a.store.Active(); ok {
				a.printf("%s\n", st.Active.Render(ws.Name))
			}
			a.printf("%s", renderTree(nodes, st, showIDs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "field[:direction], e.g. name:asc or updatedAt:desc")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show short item ids")
	return cmd
}

func newNewCmd(a *app) *cobra.Command {
	var (
		content string
		in      string
	)

	cmd := &cobra.Command{
		Use:   "new doc|folder <name>",
		Short: "Create a document or a folder",
		Long: `Create a document or a folder, optionally inside a folder.

Examples:
  notes new folder Projects
  notes new doc "Meeting notes" --in Projects -c "agenda"`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"doc", "folder"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, name := args[0], args[1]
			if kind != "doc" && kind != "folder" {
				return fmt.Errorf("unknown item kind %q, want doc or folder", kind)
			}

			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			var parent dto.Item
			if in != "" {
				if parent, err = resolveFolder(session.Items(), in); err != nil {
					return err
				}
			}

			var created *dto.Item
			if kind == "doc" {
				created, err = session.CreateDocument(cmd.Context(), name, content)
			} else {
				created, err = session.CreateFolder(cmd.Context(), name)
			}
			if err != nil {
				return err
			}

			if parent.ID != "" {
				if _, err := session.MoveToFolder(cmd.Context(), created.ID, parent.ID); err != nil {
					return fmt.Errorf("created %s but could not file it: %w", created.ID, err)
				}
			}
			a.printf("Created %s %s %s\n", created.Type, created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "document content")
	cmd.Flags().StringVar(&in, "in", "", "folder to put the new item in")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <item> <name>",
		Short: "Rename a document or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			item, err := resolveItem(session.Items(), args[0])
			if err != nil {
				return err
			}
			name := args[1]
			updated, err := session.Update(cmd.Context(), item.ID, dto.UpdateItemRequest{Name: &name})
			if err != nil {
				return err
			}
			a.printf("Renamed %s to %s\n", item.Name, updated.Name)
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item>",
		Short: "Delete a document or folder",
		Long: `Delete a document or folder. The children of a deleted folder are kept
and show up at the root unless another folder lists them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			item, err := resolveItem(session.Items(), args[0])
			if err != nil {
				return err
			}
			if err := session.Delete(cmd.Context(), item.ID); err != nil {
				return err
			}
			a.printf("Deleted %s %s\n", item.Type, item.Name)
			return nil
		},
	}
}

func newMvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <item> <folder>",
		Short: "Put an item into a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			all := session.Items()
			item, err := resolveItem(all, args[0])
			if err != nil {
				return err
			}
			folder, err := resolveFolder(all, args[1])
			if err != nil {
				return err
			}
			if _, err := session.MoveToFolder(cmd.Context(), item.ID, folder.ID); err != nil {
				return err
			}
			a.printf("Moved %s into %s\n", item.Name, folder.Name)
			return nil
		},
	}
}

func newUnfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unfile <item> <folder>",
		Short: "Take an item out of a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			all := session.Items()
			item, err := resolveItem(all, args[0])
			if err != nil {
				return err
			}
			folder, err := resolveFolder(all, args[1])
			if err != nil {
				return err
			}
			if _, err := session.RemoveFromFolder(cmd.Context(), item.ID, folder.ID); err != nil {
				return err
			}
			a.printf("Removed %s from %s\n", item.Name, folder.Name)
			return nil
		},
	}
}

func newSortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <field> [direction]",
		Short: "Save the sort order of the workspace",
		Long: `Save the sort order of root items in the workspace preferences.

Fields: name, createdAt, updatedAt. Directions: asc (default), desc.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if len(args) == 2 {
				raw += ":" + args[1]
			}
			sort, err := parseSort(raw)
			if err != nil {
				return err
			}

			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := session.SetSortOrder(cmd.Context(), sort.Field, sort.Direction); err != nil {
				return err
			}
			a.printf("Sorting by %s %s\n", sort.Field, sort.Direction)
			return nil
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy find items by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			st := newStyles(a.out)
			results := findItems(session.Tree(), strings.Join(args, " "))
			if len(results) == 0 {
				a.printf("%s\n", st.Empty.Render("(no matches)"))
				return nil
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			for _, r := range results {
				name := highlight(r.Item.Name, r.MatchedIndexes, st)
				if r.Item.Type == dto.ItemTypeFolder {
					name += "/"
				}
				where := ""
				if r.Path != "" {
					where = " in " + r.Path
				}
				a.printf("%s%s %s\n", name, where, st.ID.Render(shortID(r.Item.ID)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of results, 0 for all")
	return cmd
}
