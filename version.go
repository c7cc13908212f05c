package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipemarinho97/nyaa-indexer/consts"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := consts.GetBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", consts.ProjectName, info["version"])
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", info["revision"])
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", info["build_date"])
		},
	}
}
