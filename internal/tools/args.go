package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// parseArgs unmarshals a tool request's arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("unmarshal arguments: %w", err)
	}

	return args, nil
}

// stringArg extracts a required non-empty string parameter.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string", key)
	}

	if s == "" {
		return "", fmt.Errorf("parameter %q must not be empty", key)
	}

	return s, nil
}

// numberArg extracts a required numeric parameter.
func numberArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}

	n, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}

	return n, nil
}

// positiveNumberArg extracts a required numeric parameter that must be
// strictly positive (sizes, scales).
func positiveNumberArg(args map[string]any, key string) (float64, error) {
	n, err := numberArg(args, key)
	if err != nil {
		return 0, err
	}

	if n <= 0 {
		return 0, fmt.Errorf("parameter %q must be positive, got %v", key, n)
	}

	return n, nil
}

// stringSliceArg extracts a required non-empty array of strings.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing required parameter %q", key)
	}

	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array of strings", key)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("parameter %q must not be empty", key)
	}

	out := make([]string, 0, len(raw))

	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q element %d must be a string", key, i)
		}

		out = append(out, s)
	}

	return out, nil
}

// Schema construction helpers.

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func numberSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: desc}
}

func stringArraySchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items:       &jsonschema.Schema{Type: "string"},
	}
}
