package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/tui"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse, filter and delete transactions interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowse,
	}

	addFilterFlags(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(cmd.Context(), tui.Config{
		Store:  sess.store,
		Money:  sess.money,
		Filter: filter,
	})
}
