package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/applicationinsights/armapplicationinsights"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	dserrors "github.com/systmms/azup/internal/errors"
)

// RegistryCredentials holds the admin login for a container registry.
type RegistryCredentials struct {
	Username string
	Password string
}

// TelemetryKeys holds the Application Insights component keys.
type TelemetryKeys struct {
	InstrumentationKey string
	ConnectionString   string
}

// CredentialsAPI is the secondary-query surface of the secret enrichment
// step: one method per recognized optional resource kind, each scoped by
// resource group and resource name.
type CredentialsAPI interface {
	RegistryCredentials(ctx context.Context, resourceGroup, name string) (RegistryCredentials, error)
	StorageConnectionString(ctx context.Context, resourceGroup, name string) (string, error)
	TelemetryKeys(ctx context.Context, resourceGroup, name string) (TelemetryKeys, error)
	DatabaseConnectionString(ctx context.Context, resourceGroup, name string) (string, error)
}

type credentialsClient struct {
	registries *armcontainerregistry.RegistriesClient
	storage    *armstorage.AccountsClient
	components *armapplicationinsights.ComponentsClient
	cosmos     *armcosmos.DatabaseAccountsClient
}

func newCredentialsClient(subscriptionID string, cred azcore.TokenCredential) (*credentialsClient, error) {
	registries, err := armcontainerregistry.NewRegistriesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating container registry client", err)
	}
	storage, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating storage client", err)
	}
	components, err := armapplicationinsights.NewComponentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating application insights client", err)
	}
	cosmos, err := armcosmos.NewDatabaseAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, dserrors.ProviderError("creating cosmos client", err)
	}

	return &credentialsClient{
		registries: registries,
		storage:    storage,
		components: components,
		cosmos:     cosmos,
	}, nil
}

func (c *credentialsClient) RegistryCredentials(ctx context.Context, resourceGroup, name string) (RegistryCredentials, error) {
	resp, err := c.registries.ListCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return RegistryCredentials{}, dserrors.ProviderError("listing registry credentials for "+name, err)
	}
	if resp.Username == nil || len(resp.Passwords) == 0 || resp.Passwords[0].Value == nil {
		return RegistryCredentials{}, dserrors.ContractError{
			Operation: "listing registry credentials for " + name,
			Message:   "response is missing the admin username or password",
		}
	}
	return RegistryCredentials{
		Username: *resp.Username,
		Password: *resp.Passwords[0].Value,
	}, nil
}

func (c *credentialsClient) StorageConnectionString(ctx context.Context, resourceGroup, name string) (string, error) {
	resp, err := c.storage.ListKeys(ctx, resourceGroup, name, nil)
	if err != nil {
		return "", dserrors.ProviderError("listing storage keys for "+name, err)
	}
	if len(resp.Keys) == 0 || resp.Keys[0].Value == nil {
		return "", dserrors.ContractError{
			Operation: "listing storage keys for " + name,
			Message:   "response contains no keys",
		}
	}
	return fmt.Sprintf(
		"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
		name, *resp.Keys[0].Value,
	), nil
}

func (c *credentialsClient) TelemetryKeys(ctx context.Context, resourceGroup, name string) (TelemetryKeys, error) {
	resp, err := c.components.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return TelemetryKeys{}, dserrors.ProviderError("fetching application insights component "+name, err)
	}
	if resp.Properties == nil || resp.Properties.InstrumentationKey == nil {
		return TelemetryKeys{}, dserrors.ContractError{
			Operation: "fetching application insights component " + name,
			Message:   "component has no instrumentation key",
		}
	}
	keys := TelemetryKeys{InstrumentationKey: *resp.Properties.InstrumentationKey}
	if resp.Properties.ConnectionString != nil {
		keys.ConnectionString = *resp.Properties.ConnectionString
	}
	return keys, nil
}

func (c *credentialsClient) DatabaseConnectionString(ctx context.Context, resourceGroup, name string) (string, error) {
	resp, err := c.cosmos.ListConnectionStrings(ctx, resourceGroup, name, nil)
	if err != nil {
		return "", dserrors.ProviderError("listing cosmos connection strings for "+name, err)
	}
	if len(resp.ConnectionStrings) == 0 || resp.ConnectionStrings[0].ConnectionString == nil {
		return "", dserrors.ContractError{
			Operation: "listing cosmos connection strings for " + name,
			Message:   "response contains no connection strings",
		}
	}
	return *resp.ConnectionStrings[0].ConnectionString, nil
}
