package tools

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// successPayload is the uniform success response shape.
type successPayload struct {
	Messages []string       `json:"messages"`
	Data     map[string]any `json:"data"`
}

// errorPayload is the uniform error response shape. Context names the
// operation that failed (e.g. "cloning_node").
type errorPayload struct {
	Error   string `json:"error"`
	Context string `json:"context"`
}

// successResult wraps messages and raw result data into a tool response.
func successResult(messages []string, data map[string]any) *mcp.CallToolResult {
	if data == nil {
		data = map[string]any{}
	}

	return jsonResult(successPayload{Messages: messages, Data: data}, false)
}

// errorResult wraps a failure into the uniform error response, tagged
// with the operation context. The underlying error kind is preserved in
// the message text; the mapping never alters it.
func errorResult(opContext string, err error) *mcp.CallToolResult {
	return jsonResult(errorPayload{Error: err.Error(), Context: opContext}, true)
}

func jsonResult(payload any, isError bool) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payload shapes above always marshal; this guards future ones.
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: isError,
	}
}

// resultName extracts the node name from a plugin result, falling back
// to the node id the caller supplied.
func resultName(result map[string]any, fallback string) string {
	if result == nil {
		return fallback
	}

	if name, ok := result["name"].(string); ok && name != "" {
		return name
	}

	return fallback
}
