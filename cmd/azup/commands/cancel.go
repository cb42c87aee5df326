package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/azup/internal/config"
)

func NewCancelCommand(cfg *config.Config) *cobra.Command {
	var subscription string

	cmd := &cobra.Command{
		Use:   "cancel <project> [environment] [location]",
		Short: "Cancel the in-progress deployment",
		Long: `Request cancellation of the deployment currently running for the
project/environment/location triple. Fails if no deployment is in progress.`,
		Args:          cobra.MaximumNArgs(3),
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

			return orch.Cancel(cmd.Context(), inv.Project, inv.Environment, inv.Location)
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "Azure subscription ID (defaults to azup.yaml or AZURE_SUBSCRIPTION_ID)")

	return cmd
}
