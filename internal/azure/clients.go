// Package azure wraps the Azure resource-manager SDK behind small interfaces
// so the orchestration logic can run against fakes. Pollers stay out of the
// interfaces: long-running calls block until the service reports a terminal
// state, bounded only by the caller's context.
package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	dserrors "github.com/systmms/azup/internal/errors"
)

// Deployment describes one template deployment submission.
type Deployment struct {
	Template   map[string]any
	Parameters Parameters
	Mode       armresources.DeploymentMode
}

// DeploymentResult carries the terminal deployment state the orchestrator
// consumes. Outputs holds the raw typed output map as returned by ARM.
type DeploymentResult struct {
	Outputs any
}

// ResourceGroupsAPI is the resource-group surface used by azup.
type ResourceGroupsAPI interface {
	CreateOrUpdate(ctx context.Context, name, location string, tags map[string]string) error
	Delete(ctx context.Context, name string) error
}

// DeploymentsAPI is the template-deployment surface used by azup.
// CreateOrUpdate submits and waits for a terminal state.
type DeploymentsAPI interface {
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, dep Deployment) (DeploymentResult, error)
	Get(ctx context.Context, resourceGroup, name string) (DeploymentResult, error)
	Cancel(ctx context.Context, resourceGroup, name string) error
}

// Clients bundles the real SDK-backed implementations for one subscription.
type Clients struct {
	Groups      ResourceGroupsAPI
	Deployments DeploymentsAPI
	Credentials CredentialsAPI
}

// NewDefaultCredential builds a credential from the ambient environment:
// service principal variables, managed identity, or an az CLI login.
func NewDefaultCredential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, dserrors.UserError{
			Message:    "Failed to create Azure credential",
			Details:    err.Error(),
			Suggestion: "Run 'az login' or set AZURE_CLIENT_ID/AZURE_CLIENT_SECRET/AZURE_TENANT_ID",
			Err:        err,
		}
	}
	return cred, nil
}

// NewClients creates SDK-backed clients for the given subscription.
func NewClients(subscriptionID string, cred azcore.TokenCredential) (*Clients, error) {
	groupsClient, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating resource groups client", err)
	}
	deploymentsClient, err := armresources.NewDeploymentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating deployments client", err)
	}
	credentials, err := newCredentialsClient(subscriptionID, cred)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Groups:      &resourceGroups{client: groupsClient},
		Deployments: &deployments{client: deploymentsClient},
		Credentials: credentials,
	}, nil
}

type resourceGroups struct {
	client *armresources.ResourceGroupsClient
}

func (g *resourceGroups) CreateOrUpdate(ctx context.Context, name, location string, tags map[string]string) error {
	armTags := make(map[string]*string, len(tags))
	for k, v := range tags {
		armTags[k] = to.Ptr(v)
	}

	_, err := g.client.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     armTags,
	}, nil)
	if err != nil {
		return dserrors.ProviderError("creating resource group "+name, err)
	}
	return nil
}

func (g *resourceGroups) Delete(ctx context.Context, name string) error {
	poller, err := g.client.BeginDelete(ctx, name, nil)
	if err != nil {
		return dserrors.ProviderError("deleting resource group "+name, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return dserrors.ProviderError("deleting resource group "+name, err)
	}
	return nil
}

type deployments struct {
	client *armresources.DeploymentsClient
}

func (d *deployments) CreateOrUpdate(ctx context.Context, resourceGroup, name string, dep Deployment) (DeploymentResult, error) {
	poller, err := d.client.BeginCreateOrUpdate(ctx, resourceGroup, name, armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:       to.Ptr(dep.Mode),
			Template:   dep.Template,
			Parameters: dep.Parameters,
		},
	}, nil)
	if err != nil {
		return DeploymentResult{}, dserrors.ProviderError("submitting deployment "+name, err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return DeploymentResult{}, dserrors.ProviderError("waiting for deployment "+name, err)
	}
	if resp.Properties == nil {
		return DeploymentResult{}, dserrors.ContractError{
			Operation: "deployment " + name,
			Message:   "terminal deployment has no properties",
		}
	}
	return DeploymentResult{Outputs: resp.Properties.Outputs}, nil
}

func (d *deployments) Get(ctx context.Context, resourceGroup, name string) (DeploymentResult, error) {
	resp, err := d.client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return DeploymentResult{}, dserrors.ProviderError("fetching deployment "+name, err)
	}
	if resp.Properties == nil {
		return DeploymentResult{}, dserrors.ContractError{
			Operation: "deployment " + name,
			Message:   "deployment has no properties",
		}
	}
	return DeploymentResult{Outputs: resp.Properties.Outputs}, nil
}

func (d *deployments) Cancel(ctx context.Context, resourceGroup, name string) error {
	if _, err := d.client.Cancel(ctx, resourceGroup, name, nil); err != nil {
		return dserrors.ProviderError("cancelling deployment "+name, err)
	}
	return nil
}
