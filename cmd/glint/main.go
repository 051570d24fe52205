package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Inline diagnostics viewer",
	Long:  `Glint renders diagnostic markers as inline messages, line highlights, and gutter icons over a source file.`,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the glint version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("glint %s\n", version)
	},
}
