package azure

import (
	"encoding/json"
	"os"

	dserrors "github.com/systmms/azup/internal/errors"
)

// LoadTemplate reads an ARM template JSON file into the generic map shape the
// deployments client submits. The template itself is an opaque contract to
// azup; nothing beyond JSON syntax is validated here.
func LoadTemplate(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dserrors.UserError{
			Message:    "Failed to read deployment template",
			Details:    err.Error(),
			Suggestion: "Check the template path (default infra/azuredeploy.json, override with --template)",
			Err:        err,
		}
	}

	var template map[string]any
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, dserrors.UserError{
			Message:    "Deployment template is not valid JSON: " + path,
			Details:    err.Error(),
			Suggestion: "Validate the ARM template, e.g. with 'az deployment group validate'",
			Err:        err,
		}
	}

	return template, nil
}
