package azure

// Parameters is the ARM deployment parameter map: each value is wrapped in a
// {"value": ...} object on the wire.
type Parameters map[string]ParameterValue

// ParameterValue wraps one deployment parameter value.
type ParameterValue struct {
	Value any `json:"value"`
}

// TemplateParameters builds the parameter set every azup template receives.
// The template contract is exactly these three names.
func TemplateParameters(project, environment, location string) Parameters {
	return Parameters{
		"projectName": {Value: project},
		"environment": {Value: environment},
		"location":    {Value: location},
	}
}
