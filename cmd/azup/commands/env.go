package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/azup/internal/config"
	"github.com/systmms/azup/internal/provision"
)

func NewEnvCommand(cfg *config.Config) *cobra.Command {
	var subscription string

	cmd := &cobra.Command{
		Use:   "env <project> [environment] [location]",
		Short: "Regenerate the settings file from the existing deployment",
		Long: `Fetch the outputs of the deployment already submitted for the triple and
rewrite .{environment}.env, including fetched credentials, without deploying
anything. Useful to recover a lost settings file.`,
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

			path, err := orch.Show(cmd.Context(), provision.Request{
				Project:     inv.Project,
				Environment: inv.Environment,
				Location:    inv.Location,
				OutDir:      ".",
			})
			if err != nil {
				return err
			}

			cfg.Logger.Info("Settings for environment '%s' written to %s", inv.Environment, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "Azure subscription ID (defaults to azup.yaml or AZURE_SUBSCRIPTION_ID)")

	return cmd
}
