// Package fakes provides in-memory implementations of the Azure client
// interfaces with recorded calls and injectable errors, so orchestration
// logic can be tested without any network access.
package fakes

import (
	"context"

	"github.com/systmms/azup/internal/azure"
)

// ResourceGroupCall records one CreateOrUpdate invocation.
type ResourceGroupCall struct {
	Name     string
	Location string
	Tags     map[string]string
}

// FakeResourceGroups implements azure.ResourceGroupsAPI.
type FakeResourceGroups struct {
	CreateCalls []ResourceGroupCall
	DeleteCalls []string

	CreateErr error
	DeleteErr error
}

func NewFakeResourceGroups() *FakeResourceGroups {
	return &FakeResourceGroups{}
}

func (f *FakeResourceGroups) CreateOrUpdate(ctx context.Context, name, location string, tags map[string]string) error {
	f.CreateCalls = append(f.CreateCalls, ResourceGroupCall{Name: name, Location: location, Tags: tags})
	return f.CreateErr
}

func (f *FakeResourceGroups) Delete(ctx context.Context, name string) error {
	f.DeleteCalls = append(f.DeleteCalls, name)
	return f.DeleteErr
}

// DeploymentCall records one deployment submission.
type DeploymentCall struct {
	ResourceGroup string
	Name          string
	Spec          azure.Deployment
}

// DeploymentRef records a Get or Cancel target.
type DeploymentRef struct {
	ResourceGroup string
	Name          string
}

// FakeDeployments implements azure.DeploymentsAPI. Result is returned by both
// CreateOrUpdate and Get unless an error is configured.
type FakeDeployments struct {
	CreateCalls []DeploymentCall
	GetCalls    []DeploymentRef
	CancelCalls []DeploymentRef

	Result    azure.DeploymentResult
	CreateErr error
	GetErr    error
	CancelErr error
}

func NewFakeDeployments() *FakeDeployments {
	return &FakeDeployments{}
}

// WithOutputs sets the deployment result to the given raw output map.
func (f *FakeDeployments) WithOutputs(outputs map[string]any) *FakeDeployments {
	f.Result = azure.DeploymentResult{Outputs: outputs}
	return f
}

func (f *FakeDeployments) CreateOrUpdate(ctx context.Context, resourceGroup, name string, dep azure.Deployment) (azure.DeploymentResult, error) {
	f.CreateCalls = append(f.CreateCalls, DeploymentCall{ResourceGroup: resourceGroup, Name: name, Spec: dep})
	if f.CreateErr != nil {
		return azure.DeploymentResult{}, f.CreateErr
	}
	return f.Result, nil
}

func (f *FakeDeployments) Get(ctx context.Context, resourceGroup, name string) (azure.DeploymentResult, error) {
	f.GetCalls = append(f.GetCalls, DeploymentRef{ResourceGroup: resourceGroup, Name: name})
	if f.GetErr != nil {
		return azure.DeploymentResult{}, f.GetErr
	}
	return f.Result, nil
}

func (f *FakeDeployments) Cancel(ctx context.Context, resourceGroup, name string) error {
	f.CancelCalls = append(f.CancelCalls, DeploymentRef{ResourceGroup: resourceGroup, Name: name})
	return f.CancelErr
}

// ResourceRef records one credential query target.
type ResourceRef struct {
	ResourceGroup string
	Name          string
}

// FakeCredentials implements azure.CredentialsAPI with canned values and
// per-resource-kind injectable errors.
type FakeCredentials struct {
	RegistryCalls  []ResourceRef
	StorageCalls   []ResourceRef
	TelemetryCalls []ResourceRef
	DatabaseCalls  []ResourceRef

	Registry  azure.RegistryCredentials
	Storage   string
	Telemetry azure.TelemetryKeys
	Database  string

	RegistryErr  error
	StorageErr   error
	TelemetryErr error
	DatabaseErr  error
}

func NewFakeCredentials() *FakeCredentials {
	return &FakeCredentials{
		Registry:  azure.RegistryCredentials{Username: "admin", Password: "hunter2"},
		Storage:   "DefaultEndpointsProtocol=https;AccountName=st;AccountKey=key;EndpointSuffix=core.windows.net",
		Telemetry: azure.TelemetryKeys{InstrumentationKey: "ikey", ConnectionString: "InstrumentationKey=ikey"},
		Database:  "AccountEndpoint=https://db.documents.azure.com:443/;AccountKey=key;",
	}
}

func (f *FakeCredentials) RegistryCredentials(ctx context.Context, resourceGroup, name string) (azure.RegistryCredentials, error) {
	f.RegistryCalls = append(f.RegistryCalls, ResourceRef{resourceGroup, name})
	if f.RegistryErr != nil {
		return azure.RegistryCredentials{}, f.RegistryErr
	}
	return f.Registry, nil
}

func (f *FakeCredentials) StorageConnectionString(ctx context.Context, resourceGroup, name string) (string, error) {
	f.StorageCalls = append(f.StorageCalls, ResourceRef{resourceGroup, name})
	if f.StorageErr != nil {
		return "", f.StorageErr
	}
	return f.Storage, nil
}

func (f *FakeCredentials) TelemetryKeys(ctx context.Context, resourceGroup, name string) (azure.TelemetryKeys, error) {
	f.TelemetryCalls = append(f.TelemetryCalls, ResourceRef{resourceGroup, name})
	if f.TelemetryErr != nil {
		return azure.TelemetryKeys{}, f.TelemetryErr
	}
	return f.Telemetry, nil
}

func (f *FakeCredentials) DatabaseConnectionString(ctx context.Context, resourceGroup, name string) (string, error) {
	f.DatabaseCalls = append(f.DatabaseCalls, ResourceRef{resourceGroup, name})
	if f.DatabaseErr != nil {
		return "", f.DatabaseErr
	}
	return f.Database, nil
}
