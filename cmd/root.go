package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "check-tag-action",
	Short: "A CLI tool for gating and publishing release tags from CI",
	Long: `check-tag-action discovers Version declaration files in the working
tree, computes a tag name for each, and either validates that the tag is
still free on the remote (check mode) or creates and pushes it (tag mode).
Running without a subcommand is equivalent to "tag".`,
}

func Execute() error {
	return rootCmd.Execute()
}
