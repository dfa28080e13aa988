package main

import (
	"github.com/spf13/cobra"
)

func newWorkspacesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "List workspaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			st := newStyles(a.out)
			list := store.Workspaces()
			if len(list) == 0 {
				a.printf("%s\n", st.Empty.Render("(no workspaces)"))
				return nil
			}

			active, _ := store.Active()
			for _, ws := range list {
				if ws.ID == active.ID {
					a.printf("* %s %s\n", st.Active.Render(ws.Name), st.ID.Render(ws.ID))
					continue
				}
				a.printf("  %s %s\n", ws.Name, st.ID.Render(ws.ID))
			}
			return nil
		},
	}

	cmd.AddCommand(
		newWorkspaceUseCmd(a),
		newWorkspaceNewCmd(a),
		newWorkspaceRenameCmd(a),
		newWorkspaceRmCmd(a),
	)
	return cmd
}

func newWorkspaceUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <workspace>",
		Short: "Make a workspace the default for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := matchWorkspace(store.Workspaces(), args[0])
			if err != nil {
				return err
			}
			a.v.Set(keyWorkspace, id)
			if err := saveConfig(a.v); err != nil {
				return err
			}
			a.printf("Using workspace %s\n", id)
			return nil
		},
	}
}

func newWorkspaceNewCmd(a *app) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ws, err := store.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if use {
				a.v.Set(keyWorkspace, ws.ID)
				if err := saveConfig(a.v); err != nil {
					return err
				}
			}
			a.printf("Created workspace %s %s\n", ws.Name, ws.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&use, "use", false, "make it the default workspace")
	return cmd
}

func newWorkspaceRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <workspace> <name>",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := matchWorkspace(store.Workspaces(), args[0])
			if err != nil {
				return err
			}
			ws, err := store.Update(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			a.printf("Renamed workspace to %s\n", ws.Name)
			return nil
		},
	}
}

func newWorkspaceRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <workspace>",
		Short: "Delete a workspace and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := matchWorkspace(store.Workspaces(), args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if a.v.GetString(keyWorkspace) == id {
				a.v.Set(keyWorkspace, "")
				if err := saveConfig(a.v); err != nil {
					return err
				}
			}
			a.printf("Deleted workspace %s\n", id)
			return nil
		},
	}
}
