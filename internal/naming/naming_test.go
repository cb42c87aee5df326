package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Deterministic(t *testing.T) {
	first := Resolve("myapp", "prod", "westeurope")
	second := Resolve("myapp", "prod", "westeurope")

	assert.Equal(t, first, second)
	assert.Equal(t, "rg-myapp-prod", first.ResourceGroup)
	assert.Equal(t, "deploy-myapp-prod-westeurope", first.Deployment)
}

func TestResolve_InputSensitivity(t *testing.T) {
	base := Resolve("myapp", "prod", "westeurope")

	t.Run("project changes both names", func(t *testing.T) {
		other := Resolve("otherapp", "prod", "westeurope")
		assert.NotEqual(t, base.ResourceGroup, other.ResourceGroup)
		assert.NotEqual(t, base.Deployment, other.Deployment)
	})

	t.Run("environment changes both names", func(t *testing.T) {
		other := Resolve("myapp", "staging", "westeurope")
		assert.NotEqual(t, base.ResourceGroup, other.ResourceGroup)
		assert.NotEqual(t, base.Deployment, other.Deployment)
	})

	t.Run("location changes only the deployment name", func(t *testing.T) {
		other := Resolve("myapp", "prod", "eastus")
		assert.Equal(t, base.ResourceGroup, other.ResourceGroup)
		assert.NotEqual(t, base.Deployment, other.Deployment)
	})
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"camel case", "storageAccountName", "STORAGE_ACCOUNT_NAME"},
		{"trailing uppercase run", "storageAccountID", "STORAGE_ACCOUNT_ID"},
		{"leading uppercase run", "APIKey", "API_KEY"},
		{"already snake", "already_upper", "ALREADY_UPPER"},
		{"all uppercase", "HOSTNAME", "HOSTNAME"},
		{"hyphens and spaces", "cosmos-account name", "COSMOS_ACCOUNT_NAME"},
		{"separator runs collapse", "a--b__c", "A_B_C"},
		{"leading and trailing separators", "-key-", "KEY"},
		{"digit boundary", "storageV2", "STORAGE_V2"},
		{"single word", "endpoint", "ENDPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKey(tt.in))
		})
	}
}

func TestCanonicalKey_Idempotent(t *testing.T) {
	inputs := []string{
		"storageAccountName",
		"storageAccountID",
		"APIKey",
		"already_upper",
		"cosmos-account name",
		"appInsightsV2Key",
		"registry.name",
		"",
	}

	for _, in := range inputs {
		once := CanonicalKey(in)
		assert.Equal(t, once, CanonicalKey(once), "not idempotent for %q", in)
	}
}
