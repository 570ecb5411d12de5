package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// nodeTools declares the node manipulation tools.
func (r *Registry) nodeTools() []tool {
	return []tool{
		{
			def: &mcp.Tool{
				Name:        "move_node",
				Description: "Move a node to a new absolute position in the document",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to move"),
					"x":      numberSchema("New X position"),
					"y":      numberSchema("New Y position"),
				}, "nodeId", "x", "y"),
			},
			handler: r.moveNode,
		},
		{
			def: &mcp.Tool{
				Name:        "clone_node",
				Description: "Clone a node, optionally placing the copy at a new position",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to clone"),
					"x":      numberSchema("X position for the clone (optional)"),
					"y":      numberSchema("Y position for the clone (optional)"),
				}, "nodeId"),
			},
			handler: r.cloneNode,
		},
		{
			def: &mcp.Tool{
				Name:        "resize_node",
				Description: "Resize a node to the given width and height",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to resize"),
					"width":  numberSchema("New width, must be positive"),
					"height": numberSchema("New height, must be positive"),
				}, "nodeId", "width", "height"),
			},
			handler: r.resizeNode,
		},
		{
			def: &mcp.Tool{
				Name:        "delete_node",
				Description: "Delete a node from the document",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to delete"),
				}, "nodeId"),
			},
			handler: r.deleteNode,
		},
		{
			def: &mcp.Tool{
				Name:        "delete_multiple_nodes",
				Description: "Delete several nodes from the document in one operation",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeIds": stringArraySchema("Ids of the nodes to delete"),
				}, "nodeIds"),
			},
			handler: r.deleteMultipleNodes,
		},
	}
}

func (r *Registry) moveNode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "moving_node"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	x, err := numberArg(args, "x")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	y, err := numberArg(args, "y")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	result, err := r.bridge.SendCommand(ctx, "move_node", map[string]any{
		"nodeId": nodeID,
		"x":      x,
		"y":      y,
	})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Moved node %q to position (%v, %v)", resultName(result, nodeID), x, y)

	return successResult([]string{msg}, result), nil
}

func (r *Registry) cloneNode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "cloning_node"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	params := map[string]any{"nodeId": nodeID}

	// Position is optional; when one coordinate is given, both must be.
	_, hasX := args["x"]
	_, hasY := args["y"]

	if hasX != hasY {
		return errorResult(opContext, fmt.Errorf("parameters x and y must be given together")), nil
	}

	if hasX {
		x, err := numberArg(args, "x")
		if err != nil {
			return errorResult(opContext, err), nil
		}

		y, err := numberArg(args, "y")
		if err != nil {
			return errorResult(opContext, err), nil
		}

		params["x"] = x
		params["y"] = y
	}

	result, err := r.bridge.SendCommand(ctx, "clone_node", params)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Cloned node %q", resultName(result, nodeID))

	return successResult([]string{msg}, result), nil
}

func (r *Registry) resizeNode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "resizing_node"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	width, err := positiveNumberArg(args, "width")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	height, err := positiveNumberArg(args, "height")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	result, err := r.bridge.SendCommand(ctx, "resize_node", map[string]any{
		"nodeId": nodeID,
		"width":  width,
		"height": height,
	})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Resized node %q to %v x %v", resultName(result, nodeID), width, height)

	return successResult([]string{msg}, result), nil
}

func (r *Registry) deleteNode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "deleting_node"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	result, err := r.bridge.SendCommand(ctx, "delete_node", map[string]any{"nodeId": nodeID})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Deleted node %q", resultName(result, nodeID))

	return successResult([]string{msg}, result), nil
}

func (r *Registry) deleteMultipleNodes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "deleting_multiple_nodes"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeIDs, err := stringSliceArg(args, "nodeIds")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	// Bulk operations get the extended timeout tier.
	result, err := r.bridge.SendLongCommand(ctx, "delete_multiple_nodes", map[string]any{
		"nodeIds": nodeIDs,
	})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Deleted %d nodes", len(nodeIDs))

	return successResult([]string{msg}, result), nil
}
