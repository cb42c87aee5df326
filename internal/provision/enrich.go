package provision

import (
	"context"
	"errors"

	"github.com/systmms/azup/internal/azure"
	"github.com/systmms/azup/internal/naming"
	"github.com/systmms/azup/internal/settings"
)

// An enrichment maps an identifying output setting to the credential fetch
// for that resource kind. Adding a resource kind means adding a table row,
// nothing else.
type enrichment struct {
	settingKey string
	kind       string
	fetch      func(ctx context.Context, api azure.CredentialsAPI, resourceGroup, name string) ([]settings.Entry, error)
}

var enrichments = []enrichment{
	{settingKey: "CONTAINER_REGISTRY_NAME", kind: "container registry", fetch: fetchRegistryCredentials},
	{settingKey: "STORAGE_ACCOUNT_NAME", kind: "storage account", fetch: fetchStorageConnectionString},
	{settingKey: "APP_INSIGHTS_NAME", kind: "application insights", fetch: fetchTelemetryKeys},
	{settingKey: "COSMOS_ACCOUNT_NAME", kind: "cosmos account", fetch: fetchDatabaseConnectionString},
}

// collectSecrets walks the enrichment table against the deployment outputs.
// Resources whose identifying setting is absent are skipped; a failed fetch
// does not stop the remaining fetches, but any failure fails the run with
// the errors aggregated.
func (o *Orchestrator) collectSecrets(ctx context.Context, resourceGroup string, outputs []settings.Entry) ([]settings.Entry, error) {
	byKey := make(map[string]string, len(outputs))
	for _, e := range outputs {
		if e.Type == settings.Scalar {
			byKey[naming.CanonicalKey(e.Key)] = e.Value
		}
	}

	var secrets []settings.Entry
	var errs []error
	for _, en := range enrichments {
		name := byKey[en.settingKey]
		if name == "" {
			o.logger.Debug("No %s in this deployment, skipping", en.kind)
			continue
		}

		o.logger.Info("Fetching %s credentials for %s", en.kind, name)
		entries, err := en.fetch(ctx, o.credentials, resourceGroup, name)
		if err != nil {
			o.logger.Error("Failed to fetch %s credentials for %s: %v", en.kind, name, err)
			errs = append(errs, err)
			continue
		}
		secrets = append(secrets, entries...)
	}

	return secrets, errors.Join(errs...)
}

func fetchRegistryCredentials(ctx context.Context, api azure.CredentialsAPI, resourceGroup, name string) ([]settings.Entry, error) {
	creds, err := api.RegistryCredentials(ctx, resourceGroup, name)
	if err != nil {
		return nil, err
	}
	return []settings.Entry{
		{Key: "CONTAINER_REGISTRY_USERNAME", Type: settings.Scalar, Value: creds.Username},
		{Key: "CONTAINER_REGISTRY_PASSWORD", Type: settings.Scalar, Value: creds.Password},
	}, nil
}

func fetchStorageConnectionString(ctx context.Context, api azure.CredentialsAPI, resourceGroup, name string) ([]settings.Entry, error) {
	conn, err := api.StorageConnectionString(ctx, resourceGroup, name)
	if err != nil {
		return nil, err
	}
	return []settings.Entry{
		{Key: "STORAGE_CONNECTION_STRING", Type: settings.Scalar, Value: conn},
	}, nil
}

func fetchTelemetryKeys(ctx context.Context, api azure.CredentialsAPI, resourceGroup, name string) ([]settings.Entry, error) {
	keys, err := api.TelemetryKeys(ctx, resourceGroup, name)
	if err != nil {
		return nil, err
	}
	entries := []settings.Entry{
		{Key: "APP_INSIGHTS_INSTRUMENTATION_KEY", Type: settings.Scalar, Value: keys.InstrumentationKey},
	}
	if keys.ConnectionString != "" {
		entries = append(entries, settings.Entry{Key: "APP_INSIGHTS_CONNECTION_STRING", Type: settings.Scalar, Value: keys.ConnectionString})
	}
	return entries, nil
}

func fetchDatabaseConnectionString(ctx context.Context, api azure.CredentialsAPI, resourceGroup, name string) ([]settings.Entry, error) {
	conn, err := api.DatabaseConnectionString(ctx, resourceGroup, name)
	if err != nil {
		return nil, err
	}
	return []settings.Entry{
		{Key: "COSMOS_CONNECTION_STRING", Type: settings.Scalar, Value: conn},
	}, nil
}
