package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/azup/internal/azure"
	"github.com/systmms/azup/internal/config"
	dserrors "github.com/systmms/azup/internal/errors"
	"github.com/systmms/azup/internal/provision"
)

const (
	defaultEnvironment  = "prod"
	defaultLocation     = "westeurope"
	defaultTemplatePath = "infra/azuredeploy.json"
)

// invocation is the resolved context of one run.
type invocation struct {
	Project     string
	Environment string
	Location    string
}

// resolveInvocation merges positional arguments over defaults-file values
// over hardcoded defaults. A missing project name is a usage error.
func resolveInvocation(cfg *config.Config, args []string) (invocation, error) {
	inv := invocation{
		Project:     cfg.Defaults.Project,
		Environment: defaultEnvironment,
		Location:    defaultLocation,
	}
	if cfg.Defaults.Environment != "" {
		inv.Environment = cfg.Defaults.Environment
	}
	if cfg.Defaults.Location != "" {
		inv.Location = cfg.Defaults.Location
	}

	if len(args) > 0 && args[0] != "" {
		inv.Project = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		inv.Environment = args[1]
	}
	if len(args) > 2 && args[2] != "" {
		inv.Location = args[2]
	}

	if inv.Project == "" {
		return invocation{}, dserrors.ConfigError{
			Field:      "project",
			Message:    "a project name is required",
			Suggestion: "Pass it as the first argument, or set 'project' in azup.yaml",
		}
	}

	return inv, nil
}

// resolveSubscription picks the subscription ID: flag, then defaults file,
// then the SDK's conventional environment variable.
func resolveSubscription(cfg *config.Config, flagValue string) (string, error) {
	switch {
	case flagValue != "":
		return flagValue, nil
	case cfg.Defaults.Subscription != "":
		return cfg.Defaults.Subscription, nil
	case os.Getenv("AZURE_SUBSCRIPTION_ID") != "":
		return os.Getenv("AZURE_SUBSCRIPTION_ID"), nil
	}
	return "", dserrors.ConfigError{
		Field:      "subscription",
		Message:    "no Azure subscription configured",
		Suggestion: "Set 'subscription' in azup.yaml, pass --subscription, or export AZURE_SUBSCRIPTION_ID",
	}
}

// resolveTemplate picks the template path: flag, then defaults file, then
// the conventional location.
func resolveTemplate(cfg *config.Config, flagValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case cfg.Defaults.Template != "":
		return cfg.Defaults.Template
	}
	return defaultTemplatePath
}

// usageError prints the command help to standard output and returns the
// error for a nonzero exit.
func usageError(cmd *cobra.Command, err error) error {
	_ = cmd.Help()
	return err
}

// newOrchestrator wires the real Azure clients. Called only after argument
// resolution succeeds, so usage errors never touch the network.
func newOrchestrator(cfg *config.Config, subscription string) (*provision.Orchestrator, error) {
	cred, err := azure.NewDefaultCredential()
	if err != nil {
		return nil, err
	}
	clients, err := azure.NewClients(subscription, cred)
	if err != nil {
		return nil, err
	}
	return provision.New(clients.Groups, clients.Deployments, clients.Credentials, cfg.Logger), nil
}

// commandContext bounds the run when a timeout is set; zero means wait as
// long as Azure does.
func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
