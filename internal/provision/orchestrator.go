// Package provision drives the infrastructure lifecycle for one
// project/environment/region triple: ensure the resource group, deploy the
// template, turn the outputs and a secondary round of credential queries into
// the local settings artifact. Sibling flows tear down, cancel, or
// re-introspect the same identity.
package provision

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/systmms/azup/internal/azure"
	"github.com/systmms/azup/internal/logging"
	"github.com/systmms/azup/internal/naming"
	"github.com/systmms/azup/internal/settings"
)

// managedByTag marks resource groups created by this tool.
const managedByTag = "azup"

// Request describes one provisioning or introspection run.
type Request struct {
	Project      string
	Environment  string
	Location     string
	TemplatePath string
	// OutDir is where the settings artifact lands, usually the working
	// directory.
	OutDir string
}

// Orchestrator runs the lifecycle flows against an injected provider
// boundary.
type Orchestrator struct {
	groups      azure.ResourceGroupsAPI
	deployments azure.DeploymentsAPI
	credentials azure.CredentialsAPI
	logger      *logging.Logger
}

// New creates an orchestrator.
func New(groups azure.ResourceGroupsAPI, deployments azure.DeploymentsAPI, credentials azure.CredentialsAPI, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		groups:      groups,
		deployments: deployments,
		credentials: credentials,
		logger:      logger,
	}
}

// Update provisions the environment end to end and returns the artifact
// path. Every step failure aborts the run; cloud-side changes already applied
// are left in place.
func (o *Orchestrator) Update(ctx context.Context, req Request) (string, error) {
	names := naming.Resolve(req.Project, req.Environment, req.Location)

	o.logger.Info("Ensuring resource group %s in %s", names.ResourceGroup, req.Location)
	tags := map[string]string{
		"project":     req.Project,
		"environment": req.Environment,
		"managed-by":  managedByTag,
	}
	if err := o.groups.CreateOrUpdate(ctx, names.ResourceGroup, req.Location, tags); err != nil {
		return "", err
	}

	template, err := azure.LoadTemplate(req.TemplatePath)
	if err != nil {
		return "", err
	}

	o.logger.Warn("Deploying in complete mode: resources in %s not declared by the template will be deleted", names.ResourceGroup)
	o.logger.Info("Submitting deployment %s (this can take a while)", names.Deployment)
	result, err := o.deployments.CreateOrUpdate(ctx, names.ResourceGroup, names.Deployment, azure.Deployment{
		Template:   template,
		Parameters: azure.TemplateParameters(req.Project, req.Environment, req.Location),
		Mode:       armresources.DeploymentModeComplete,
	})
	if err != nil {
		return "", err
	}

	return o.materialize(ctx, names.ResourceGroup, req, result)
}

// Show regenerates the settings artifact from an already-submitted
// deployment without touching any infrastructure.
func (o *Orchestrator) Show(ctx context.Context, req Request) (string, error) {
	names := naming.Resolve(req.Project, req.Environment, req.Location)

	o.logger.Info("Fetching outputs of deployment %s", names.Deployment)
	result, err := o.deployments.Get(ctx, names.ResourceGroup, names.Deployment)
	if err != nil {
		return "", err
	}

	return o.materialize(ctx, names.ResourceGroup, req, result)
}

// materialize is the shared tail of Update and Show: parse outputs, collect
// secrets in memory, then write the artifact exactly once.
func (o *Orchestrator) materialize(ctx context.Context, resourceGroup string, req Request, result azure.DeploymentResult) (string, error) {
	outputs, err := azure.ParseOutputs(result.Outputs)
	if err != nil {
		return "", err
	}

	secrets, err := o.collectSecrets(ctx, resourceGroup, outputs)
	if err != nil {
		return "", err
	}

	path, err := settings.Write(req.OutDir, req.Environment, outputs, secrets)
	if err != nil {
		return "", err
	}

	o.logger.Info("Wrote %d settings and %d secrets to %s", len(outputs), len(secrets), path)
	return path, nil
}

// Teardown deletes the resource group and, through Azure's cascading delete,
// everything inside it. There is no dry run.
func (o *Orchestrator) Teardown(ctx context.Context, project, environment string) error {
	names := naming.Resolve(project, environment, "")

	o.logger.Warn("Deleting resource group %s and every resource in it", names.ResourceGroup)
	if err := o.groups.Delete(ctx, names.ResourceGroup); err != nil {
		return err
	}
	o.logger.Info("Resource group %s deleted", names.ResourceGroup)
	return nil
}

// Cancel requests cancellation of the in-progress deployment for the triple.
// Azure rejects the call if no deployment is running.
func (o *Orchestrator) Cancel(ctx context.Context, project, environment, location string) error {
	names := naming.Resolve(project, environment, location)

	o.logger.Info("Cancelling deployment %s", names.Deployment)
	if err := o.deployments.Cancel(ctx, names.ResourceGroup, names.Deployment); err != nil {
		return err
	}
	o.logger.Info("Deployment %s cancelled", names.Deployment)
	return nil
}
