package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "quill",
		Short:         "Quill language toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the Quill version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("quill %s\n", config.Version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
