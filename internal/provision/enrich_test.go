package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/azup/internal/settings"
	"github.com/systmms/azup/tests/fakes"
)

func scalar(key, value string) settings.Entry {
	return settings.Entry{Key: key, Type: settings.Scalar, Value: value}
}

func TestCollectSecrets_SkipsAbsentResources(t *testing.T) {
	credentials := fakes.NewFakeCredentials()
	o := New(nil, nil, credentials, testLogger())

	secrets, err := o.collectSecrets(context.Background(), "rg-myapp-dev", []settings.Entry{
		scalar("apiEndpoint", "https://api.example.com"),
	})
	require.NoError(t, err)

	assert.Empty(t, secrets)
	assert.Empty(t, credentials.RegistryCalls)
	assert.Empty(t, credentials.StorageCalls)
	assert.Empty(t, credentials.TelemetryCalls)
	assert.Empty(t, credentials.DatabaseCalls)
}

func TestCollectSecrets_RegistryPresent(t *testing.T) {
	credentials := fakes.NewFakeCredentials()
	o := New(nil, nil, credentials, testLogger())

	secrets, err := o.collectSecrets(context.Background(), "rg-myapp-dev", []settings.Entry{
		scalar("containerRegistryName", "acrmyapp"),
	})
	require.NoError(t, err)

	require.Len(t, credentials.RegistryCalls, 1)
	assert.Equal(t, fakes.ResourceRef{ResourceGroup: "rg-myapp-dev", Name: "acrmyapp"}, credentials.RegistryCalls[0])

	require.Len(t, secrets, 2)
	assert.Equal(t, scalar("CONTAINER_REGISTRY_USERNAME", "admin"), secrets[0])
	assert.Equal(t, scalar("CONTAINER_REGISTRY_PASSWORD", "hunter2"), secrets[1])
}

func TestCollectSecrets_AllResourceKinds(t *testing.T) {
	credentials := fakes.NewFakeCredentials()
	o := New(nil, nil, credentials, testLogger())

	secrets, err := o.collectSecrets(context.Background(), "rg", []settings.Entry{
		scalar("containerRegistryName", "acr"),
		scalar("storageAccountName", "st"),
		scalar("appInsightsName", "ai"),
		scalar("cosmosAccountName", "db"),
	})
	require.NoError(t, err)

	keys := make([]string, len(secrets))
	for i, s := range secrets {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{
		"CONTAINER_REGISTRY_USERNAME",
		"CONTAINER_REGISTRY_PASSWORD",
		"STORAGE_CONNECTION_STRING",
		"APP_INSIGHTS_INSTRUMENTATION_KEY",
		"APP_INSIGHTS_CONNECTION_STRING",
		"COSMOS_CONNECTION_STRING",
	}, keys)
}

func TestCollectSecrets_FailureIsIsolatedAndAggregated(t *testing.T) {
	credentials := fakes.NewFakeCredentials()
	registryErr := errors.New("registry unreachable")
	credentials.RegistryErr = registryErr
	o := New(nil, nil, credentials, testLogger())

	secrets, err := o.collectSecrets(context.Background(), "rg", []settings.Entry{
		scalar("containerRegistryName", "acr"),
		scalar("storageAccountName", "st"),
	})

	// The storage fetch still ran despite the registry failure.
	require.Len(t, credentials.StorageCalls, 1)
	require.Len(t, secrets, 1)
	assert.Equal(t, "STORAGE_CONNECTION_STRING", secrets[0].Key)

	require.Error(t, err)
	assert.ErrorIs(t, err, registryErr)
}

func TestCollectSecrets_ArrayOutputsIgnored(t *testing.T) {
	credentials := fakes.NewFakeCredentials()
	o := New(nil, nil, credentials, testLogger())

	secrets, err := o.collectSecrets(context.Background(), "rg", []settings.Entry{
		{Key: "containerRegistryName", Type: settings.Array, Values: []string{"acr"}},
	})
	require.NoError(t, err)
	assert.Empty(t, secrets)
	assert.Empty(t, credentials.RegistryCalls)
}
