package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildVersion is stamped by the release pipeline via -ldflags.
var BuildVersion = "dev"

func main() {
	root := &cobra.Command{
		Use:           "montage",
		Short:         "Inspect and export montage timeline projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(BuildVersion)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}
