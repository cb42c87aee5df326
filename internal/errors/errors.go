package errors

import (
	"fmt"
	"strings"
)

// UserError is an error that should be shown to the user with helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError is a configuration or invocation error with helpful context.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// ContractError reports a malformed response from the control plane: the call
// itself succeeded but the payload does not match the documented shape. This
// is distinct from a ProviderError, where Azure reported the failure.
type ContractError struct {
	Operation string
	Message   string
	Err       error
}

func (e ContractError) Error() string {
	msg := fmt.Sprintf("unexpected response from Azure during %s: %s", e.Operation, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ContractError) Unwrap() error {
	return e.Err
}

// ProviderError decorates an Azure control-plane failure with context and a
// suggestion derived from the error text.
func ProviderError(operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Azure error during %s", operation),
		Suggestion: azureSuggestion(err),
		Err:        err,
	}
}

// azureSuggestion returns a helpful suggestion based on the Azure error text.
func azureSuggestion(err error) string {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "forbidden") || strings.Contains(errStr, "authorizationfailed") || strings.Contains(errStr, "access denied"):
		return "Check RBAC role assignments on the subscription or resource group (Contributor is required to deploy)"
	case strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "401") || strings.Contains(errStr, "credential"):
		return "Check authentication: run 'az login' or configure a service principal / managed identity"
	case strings.Contains(errStr, "deploymentnotfound"):
		return "No deployment with that name exists. Run 'azup update' first, or check project/environment/location arguments"
	case strings.Contains(errStr, "resourcegroupnotfound"):
		return "The resource group does not exist. Run 'azup update' to create it"
	case strings.Contains(errStr, "quotaexceeded") || strings.Contains(errStr, "quota"):
		return "Subscription quota exceeded. Request a quota increase or pick another location"
	case strings.Contains(errStr, "invalidtemplate"):
		return "The ARM template failed validation. Check the template file for syntax or parameter errors"
	case strings.Contains(errStr, "throttled") || strings.Contains(errStr, "429") || strings.Contains(errStr, "toomanyrequests"):
		return "Request was throttled by Azure. Wait a moment and try again"
	case strings.Contains(errStr, "subscription"):
		return "Check that the subscription ID is correct and your account has access to it"
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "context deadline"):
		return "The operation timed out. Check your network connection, or raise --timeout"
	default:
		return "Check Azure credentials, the subscription ID, and the az activity log for details"
	}
}
