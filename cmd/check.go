package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lindenlab/check-tag-action/internal/orchestrator"
)

// NewCheckCmd creates the check command
func NewCheckCmd(c *container, orch *orchestrator.CheckOrchestrator) *cobra.Command {
	checkRoot := c.cfg.Root
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate that computed tags do not already exist on the remote",
		Long: `Validate every Version declaration against the remote tag namespace.

Date declarations always pass. For other declarations an existing tag is a
warning on the default branch but a hard failure on any other branch,
signaling that the Version file must be bumped before merge. Nothing is
mutated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := orchestrator.CheckConfig{
				Root: checkRoot,
			}
			return orch.Execute(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&checkRoot, "root", c.cfg.Root, "Tree to scan for Version declarations")
	return cmd
}
