package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/azup/internal/config"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	var subscription string

	cmd := &cobra.Command{
		Use:   "delete <project> [environment]",
		Short: "Tear down the environment's resource group",
		Long: `Delete the environment's resource group and, through Azure's cascading
delete, every resource inside it. There is no confirmation prompt and no
dry run.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			inv, err := resolveInvocation(cfg, args)
			if err != nil {
				return usageError(cmd, err)
			}
			sub, err := resolveSubscription(cfg, subscription)
			if err != nil {
				return err
			}

			orch, err := newOrchestrator(cfg, sub)
			if err != nil {
				return err
			}

			return orch.Teardown(cmd.Context(), inv.Project, inv.Environment)
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "Azure subscription ID (defaults to azup.yaml or AZURE_SUBSCRIPTION_ID)")

	return cmd
}
