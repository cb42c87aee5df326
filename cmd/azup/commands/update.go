package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/azup/internal/config"
	"github.com/systmms/azup/internal/provision"
)

func NewUpdateCommand(cfg *config.Config) *cobra.Command {
	var (
		subscription string
		templatePath string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "update <project> [environment] [location]",
		Short: "Provision the environment and write its settings file",
		Long: `Ensure the resource group exists, deploy the ARM template against it, and
write the deployment outputs plus fetched credentials to .{environment}.env.

The deployment runs in complete mode: resources in the group that the
template does not declare are deleted. Environment defaults to 'prod' and
location to 'westeurope' unless overridden by azup.yaml or arguments.

Examples:
  azup update myapp
  azup update myapp staging
  azup update myapp staging eastus --template infra/main.json`,
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

			ctx, cancel := commandContext(cmd, timeout)
			defer cancel()

			path, err := orch.Update(ctx, provision.Request{
				Project:      inv.Project,
				Environment:  inv.Environment,
				Location:     inv.Location,
				TemplatePath: resolveTemplate(cfg, templatePath),
				OutDir:       ".",
			})
			if err != nil {
				return err
			}

			cfg.Logger.Info("Environment '%s' of project '%s' is ready; source %s to use it", inv.Environment, inv.Project, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&subscription, "subscription", "", "Azure subscription ID (defaults to azup.yaml or AZURE_SUBSCRIPTION_ID)")
	cmd.Flags().StringVar(&templatePath, "template", "", "ARM template path (default "+defaultTemplatePath+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Bound the deployment wait (e.g. '30m'; 0 waits indefinitely)")

	return cmd
}
