package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lindenlab/check-tag-action/internal/orchestrator"
)

// NewTagCmd creates the tag command
func NewTagCmd(c *container, orch *orchestrator.TagOrchestrator) *cobra.Command {
	var (
		tagRoot        string
		tagDryRun      bool
		tagMaxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Create and push a tag for every Version declaration",
		Long: `Create and push one tag per Version declaration.

On the default branch this creates release tags (with an ascending counter
for same-day date re-releases). On any other branch it creates prerelease
tags suffixed with the sanitized branch name and the first free counter.
Created tag names are published to GITHUB_OUTPUT and the run report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := orchestrator.TagConfig{
				Root:        tagRoot,
				DryRun:      tagDryRun,
				MaxAttempts: tagMaxAttempts,
			}
			return orch.Execute(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&tagRoot, "root", c.cfg.Root, "Tree to scan for Version declarations")
	cmd.Flags().BoolVar(&tagDryRun, "dry-run", c.cfg.DryRun, "Run every decision without mutating the remote")
	cmd.Flags().IntVar(&tagMaxAttempts, "max-attempts", c.cfg.MaxAttempts, "Exclusive upper bound for counter suffixes")
	return cmd
}
