package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for storectl.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.out, version)
				return
			}

			fmt.Fprintf(a.out, "  Version:    %s\n", version)
			fmt.Fprintf(a.out, "  Commit:     %s\n", commit)
			fmt.Fprintf(a.out, "  Built:      %s\n", date)
			fmt.Fprintf(a.out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(a.out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
