// Package naming derives the stable Azure identifiers used across every azup
// run. Re-running with the same project/environment/location must target the
// same resource group and deployment, so both functions here are pure and
// deterministic.
package naming

import "fmt"

// Names holds the derived identifiers for one invocation.
type Names struct {
	// ResourceGroup scopes all resources for one (project, environment) pair.
	ResourceGroup string
	// Deployment identifies the template deployment within the resource
	// group, keyed additionally by location.
	Deployment string
}

// Resolve derives the resource group and deployment names.
func Resolve(project, environment, location string) Names {
	return Names{
		ResourceGroup: fmt.Sprintf("rg-%s-%s", project, environment),
		Deployment:    fmt.Sprintf("deploy-%s-%s-%s", project, environment, location),
	}
}
