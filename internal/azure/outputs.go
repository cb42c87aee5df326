package azure

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	dserrors "github.com/systmms/azup/internal/errors"
	"github.com/systmms/azup/internal/settings"
)

// ParseOutputs converts the raw deployment output map into settings entries.
// ARM returns {"name": {"type": "String", "value": ...}, ...}; entries come
// back sorted by key so repeated runs emit a stable artifact. A payload that
// does not match that shape is a contract violation, not a deployment
// failure.
func ParseOutputs(raw any) ([]settings.Entry, error) {
	if raw == nil {
		return nil, nil
	}

	outputs, ok := raw.(map[string]any)
	if !ok {
		return nil, dserrors.ContractError{
			Operation: "parsing deployment outputs",
			Message:   fmt.Sprintf("outputs are %T, expected an object", raw),
		}
	}

	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]settings.Entry, 0, len(outputs))
	for _, key := range keys {
		entry, err := parseOutput(key, outputs[key])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseOutput(key string, raw any) (settings.Entry, error) {
	wrapper, ok := raw.(map[string]any)
	if !ok {
		return settings.Entry{}, dserrors.ContractError{
			Operation: "parsing deployment outputs",
			Message:   fmt.Sprintf("output %q is %T, expected a {type, value} object", key, raw),
		}
	}

	typ, ok := wrapper["type"].(string)
	if !ok {
		return settings.Entry{}, dserrors.ContractError{
			Operation: "parsing deployment outputs",
			Message:   fmt.Sprintf("output %q has no type", key),
		}
	}
	value, ok := wrapper["value"]
	if !ok {
		return settings.Entry{}, dserrors.ContractError{
			Operation: "parsing deployment outputs",
			Message:   fmt.Sprintf("output %q has no value", key),
		}
	}

	if typ == "Array" || typ == "array" {
		elems, ok := value.([]any)
		if !ok {
			return settings.Entry{}, dserrors.ContractError{
				Operation: "parsing deployment outputs",
				Message:   fmt.Sprintf("array output %q is %T, expected a list", key, value),
			}
		}
		values := make([]string, len(elems))
		for i, e := range elems {
			values[i] = formatScalar(e)
		}
		return settings.Entry{Key: key, Type: settings.Array, Values: values}, nil
	}

	return settings.Entry{Key: key, Type: settings.Scalar, Value: formatScalar(value)}, nil
}

// formatScalar renders a JSON-decoded output value as the string that lands
// in the artifact. Objects fall back to compact JSON.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
