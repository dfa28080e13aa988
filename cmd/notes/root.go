package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Organize documents and folders in your notes workspaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/notes/config.yaml)")
	root.PersistentFlags().StringVarP(&a.workspace, "workspace", "W", "", "workspace id or name (default from config, then the first workspace)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests that fail")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWorkspacesCmd(a),
		newTreeCmd(a),
		newNewCmd(a),
		newRenameCmd(a),
		newRmCmd(a),
		newMvCmd(a),
		newUnfileCmd(a),
		newSortCmd(a),
		newFindCmd(a),
	)
	return root
}
