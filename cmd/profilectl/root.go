package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "profilectl",
		Short:        "Administer and query profile playground data",
		SilenceUsage: true,
	}
	root.AddCommand(newSeedOwnerCmd())
	root.AddCommand(newQueryCmd())
	return root
}
