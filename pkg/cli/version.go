package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "privatevote-deploy %s", a.info.Version)
			if a.info.Commit != "" {
				fmt.Fprintf(a.stdout, " (commit %s)", a.info.Commit)
			}
			if a.info.Date != "" {
				fmt.Fprintf(a.stdout, " built %s", a.info.Date)
			}
			fmt.Fprintln(a.stdout)
		},
	}
}
