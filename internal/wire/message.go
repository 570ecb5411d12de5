// Package wire defines the JSON message shapes exchanged with the plugin.
package wire

// Command represents a command sent to the plugin.
//
// Wire format:
//
//	{
//	  "id": "01J9XVZ2...",
//	  "type": "command",
//	  "command": "move_node",
//	  "params": {"nodeId": "1", "x": 10, "y": 20}
//	}
type Command struct {
	// ID uniquely identifies this command for reply correlation
	ID string `json:"id"`

	// Type is always "command"
	Type string `json:"type"`

	// Command is the operation name understood by the plugin
	Command string `json:"command"`

	// Params carries the operation's parameter object
	Params map[string]any `json:"params"`
}

// NewCommand builds a Command with the type field set.
func NewCommand(id, name string, params map[string]any) *Command {
	if params == nil {
		params = map[string]any{}
	}

	return &Command{
		ID:      id,
		Type:    "command",
		Command: name,
		Params:  params,
	}
}

// Reply wraps a decoded message received from the plugin.
//
// Wire format for success:
//
//	{"id": "01J9XVZ2...", "result": {...}}
//
// Wire format for error:
//
//	{"id": "01J9XVZ2...", "error": "node not found"}
type Reply map[string]any

// ID extracts the correlation id, or "" when absent.
func (r Reply) ID() string {
	if id, ok := r["id"].(string); ok {
		return id
	}

	return ""
}

// IsError reports whether the reply carries an error payload.
func (r Reply) IsError() bool {
	_, ok := r["error"]

	return ok
}

// ErrorMessage extracts the error message from an error reply.
func (r Reply) ErrorMessage() string {
	if e, ok := r["error"].(string); ok {
		return e
	}

	return ""
}

// Result extracts the result payload from a success reply.
func (r Reply) Result() map[string]any {
	if res, ok := r["result"].(map[string]any); ok {
		return res
	}

	return nil
}
