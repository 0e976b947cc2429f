package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time using -ldflags "-X github.com/franceviagens/portal/cmd/viagens/cmd.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of viagens",
		// Printing the version needs no configuration.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "viagens v%s\n", Version)
		},
	}
}
