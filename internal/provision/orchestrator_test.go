package provision

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/azup/internal/errors"
	"github.com/systmms/azup/internal/logging"
	"github.com/systmms/azup/internal/settings"
	"github.com/systmms/azup/tests/fakes"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, false, true)
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "azuredeploy.json")
	template := `{"$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#", "resources": []}`
	require.NoError(t, os.WriteFile(path, []byte(template), 0644))
	return path
}

func testRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		Project:      "myapp",
		Environment:  "dev",
		Location:     "westeurope",
		TemplatePath: writeTemplate(t),
		OutDir:       t.TempDir(),
	}
}

func TestUpdate_HappyPath(t *testing.T) {
	groups := fakes.NewFakeResourceGroups()
	deployments := fakes.NewFakeDeployments().WithOutputs(map[string]any{
		"apiEndpoint":           map[string]any{"type": "String", "value": "https://api.example.com"},
		"containerRegistryName": map[string]any{"type": "String", "value": "acrmyapp"},
	})
	credentials := fakes.NewFakeCredentials()
	o := New(groups, deployments, credentials, testLogger())

	req := testRequest(t)
	path, err := o.Update(context.Background(), req)
	require.NoError(t, err)

	// Resource group ensured with the identifying tags.
	require.Len(t, groups.CreateCalls, 1)
	assert.Equal(t, "rg-myapp-dev", groups.CreateCalls[0].Name)
	assert.Equal(t, "westeurope", groups.CreateCalls[0].Location)
	assert.Equal(t, map[string]string{
		"project":     "myapp",
		"environment": "dev",
		"managed-by":  "azup",
	}, groups.CreateCalls[0].Tags)

	// Deployment submitted against the group with the contract parameters.
	require.Len(t, deployments.CreateCalls, 1)
	call := deployments.CreateCalls[0]
	assert.Equal(t, "rg-myapp-dev", call.ResourceGroup)
	assert.Equal(t, "deploy-myapp-dev-westeurope", call.Name)
	assert.Equal(t, "myapp", call.Spec.Parameters["projectName"].Value)
	assert.Equal(t, "dev", call.Spec.Parameters["environment"].Value)
	assert.Equal(t, "westeurope", call.Spec.Parameters["location"].Value)

	// Artifact contains outputs and the registry secrets.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "API_ENDPOINT='https://api.example.com'")
	assert.Contains(t, content, "CONTAINER_REGISTRY_NAME='acrmyapp'")
	assert.Contains(t, content, settings.SecretsDelimiter)
	assert.Contains(t, content, "CONTAINER_REGISTRY_USERNAME='admin'")
	assert.Contains(t, content, "CONTAINER_REGISTRY_PASSWORD='hunter2'")
}

func TestUpdate_AlwaysUsesCompleteMode(t *testing.T) {
	deployments := fakes.NewFakeDeployments()
	o := New(fakes.NewFakeResourceGroups(), deployments, fakes.NewFakeCredentials(), testLogger())

	_, err := o.Update(context.Background(), testRequest(t))
	require.NoError(t, err)

	require.Len(t, deployments.CreateCalls, 1)
	assert.Equal(t, armresources.DeploymentModeComplete, deployments.CreateCalls[0].Spec.Mode)
}

func TestUpdate_GroupFailureAbortsBeforeDeployment(t *testing.T) {
	groups := fakes.NewFakeResourceGroups()
	groups.CreateErr = errors.New("AuthorizationFailed")
	deployments := fakes.NewFakeDeployments()
	o := New(groups, deployments, fakes.NewFakeCredentials(), testLogger())

	_, err := o.Update(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Empty(t, deployments.CreateCalls)
}

func TestUpdate_DeploymentFailureWritesNoArtifact(t *testing.T) {
	deployments := fakes.NewFakeDeployments()
	deployments.CreateErr = errors.New("DeploymentFailed")
	o := New(fakes.NewFakeResourceGroups(), deployments, fakes.NewFakeCredentials(), testLogger())

	req := testRequest(t)
	_, err := o.Update(context.Background(), req)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(req.OutDir, settings.Path(req.Environment)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdate_MalformedOutputsIsContractViolation(t *testing.T) {
	deployments := fakes.NewFakeDeployments()
	deployments.Result.Outputs = "not an object"
	o := New(fakes.NewFakeResourceGroups(), deployments, fakes.NewFakeCredentials(), testLogger())

	_, err := o.Update(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.ErrorAs(t, err, &dserrors.ContractError{})
}

func TestUpdate_MissingTemplateFailsAfterGroupEnsure(t *testing.T) {
	groups := fakes.NewFakeResourceGroups()
	deployments := fakes.NewFakeDeployments()
	o := New(groups, deployments, fakes.NewFakeCredentials(), testLogger())

	req := testRequest(t)
	req.TemplatePath = filepath.Join(t.TempDir(), "missing.json")
	_, err := o.Update(context.Background(), req)
	require.Error(t, err)
	assert.Len(t, groups.CreateCalls, 1)
	assert.Empty(t, deployments.CreateCalls)
}

func TestShow_RegeneratesArtifactWithoutDeploying(t *testing.T) {
	deployments := fakes.NewFakeDeployments().WithOutputs(map[string]any{
		"storageAccountName": map[string]any{"type": "String", "value": "stmyapp"},
	})
	credentials := fakes.NewFakeCredentials()
	o := New(fakes.NewFakeResourceGroups(), deployments, credentials, testLogger())

	req := testRequest(t)
	path, err := o.Show(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, deployments.GetCalls, 1)
	assert.Equal(t, fakes.DeploymentRef{ResourceGroup: "rg-myapp-dev", Name: "deploy-myapp-dev-westeurope"}, deployments.GetCalls[0])
	assert.Empty(t, deployments.CreateCalls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "STORAGE_ACCOUNT_NAME='stmyapp'")
	assert.Contains(t, string(data), "STORAGE_CONNECTION_STRING=")
	require.Len(t, credentials.StorageCalls, 1)
}

func TestTeardown(t *testing.T) {
	groups := fakes.NewFakeResourceGroups()
	o := New(groups, fakes.NewFakeDeployments(), fakes.NewFakeCredentials(), testLogger())

	require.NoError(t, o.Teardown(context.Background(), "myapp", "dev"))
	assert.Equal(t, []string{"rg-myapp-dev"}, groups.DeleteCalls)

	// Any provider error is fatal, including an already-absent group.
	groups.DeleteErr = errors.New("ResourceGroupNotFound")
	assert.Error(t, o.Teardown(context.Background(), "myapp", "dev"))
}

func TestCancel(t *testing.T) {
	deployments := fakes.NewFakeDeployments()
	o := New(fakes.NewFakeResourceGroups(), deployments, fakes.NewFakeCredentials(), testLogger())

	require.NoError(t, o.Cancel(context.Background(), "myapp", "dev", "westeurope"))
	require.Len(t, deployments.CancelCalls, 1)
	assert.Equal(t, fakes.DeploymentRef{ResourceGroup: "rg-myapp-dev", Name: "deploy-myapp-dev-westeurope"}, deployments.CancelCalls[0])

	deployments.CancelErr = errors.New("no deployment in progress")
	assert.Error(t, o.Cancel(context.Background(), "myapp", "dev", "westeurope"))
}

func TestUpdate_EmptyOutputs(t *testing.T) {
	o := New(fakes.NewFakeResourceGroups(), fakes.NewFakeDeployments(), fakes.NewFakeCredentials(), testLogger())

	req := testRequest(t)
	path, err := o.Update(context.Background(), req)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		assert.True(t, strings.HasPrefix(line, "#"), "expected only header lines, got %q", line)
	}
}
