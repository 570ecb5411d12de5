package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// exportFormats lists the image formats the plugin can render.
var exportFormats = map[string]bool{
	"PNG": true,
	"JPG": true,
	"SVG": true,
	"PDF": true,
}

// documentTools declares the read, text, and export tools.
func (r *Registry) documentTools() []tool {
	return []tool{
		{
			def: &mcp.Tool{
				Name:        "get_document_info",
				Description: "Get information about the current document",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{}),
			},
			handler: r.getDocumentInfo,
		},
		{
			def: &mcp.Tool{
				Name:        "get_selection",
				Description: "Get the nodes currently selected in the editor",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{}),
			},
			handler: r.getSelection,
		},
		{
			def: &mcp.Tool{
				Name:        "get_node_info",
				Description: "Get detailed information about a specific node",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to inspect"),
				}, "nodeId"),
			},
			handler: r.getNodeInfo,
		},
		{
			def: &mcp.Tool{
				Name:        "set_text_content",
				Description: "Replace the text content of a text node",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the text node"),
					"text":   stringSchema("New text content"),
				}, "nodeId", "text"),
			},
			handler: r.setTextContent,
		},
		{
			def: &mcp.Tool{
				Name:        "export_node_as_image",
				Description: "Export a node as an image (PNG, JPG, SVG, or PDF)",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"nodeId": stringSchema("Id of the node to export"),
					"format": stringSchema("Image format, one of PNG, JPG, SVG, PDF (default PNG)"),
					"scale":  numberSchema("Export scale factor, must be positive (default 1)"),
				}, "nodeId"),
			},
			handler: r.exportNodeAsImage,
		},
	}
}

func (r *Registry) getDocumentInfo(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "getting_document_info"

	result, err := r.bridge.SendCommand(ctx, "get_document_info", nil)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	return successResult([]string{"Retrieved document info"}, result), nil
}

func (r *Registry) getSelection(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "getting_selection"

	result, err := r.bridge.SendCommand(ctx, "get_selection", nil)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	return successResult([]string{"Retrieved current selection"}, result), nil
}

func (r *Registry) getNodeInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "getting_node_info"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	result, err := r.bridge.SendCommand(ctx, "get_node_info", map[string]any{"nodeId": nodeID})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Retrieved info for node %q", resultName(result, nodeID))

	return successResult([]string{msg}, result), nil
}

func (r *Registry) setTextContent(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "setting_text_content"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return errorResult(opContext, fmt.Errorf("parameter %q must be a string", "text")), nil
	}

	result, err := r.bridge.SendCommand(ctx, "set_text_content", map[string]any{
		"nodeId": nodeID,
		"text":   text,
	})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Set text of node %q", resultName(result, nodeID))

	return successResult([]string{msg}, result), nil
}

func (r *Registry) exportNodeAsImage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const opContext = "exporting_node_as_image"

	args, err := parseArgs(req)
	if err != nil {
		return errorResult(opContext, err), nil
	}

	nodeID, err := stringArg(args, "nodeId")
	if err != nil {
		return errorResult(opContext, err), nil
	}

	format := "PNG"

	if _, ok := args["format"]; ok {
		format, err = stringArg(args, "format")
		if err != nil {
			return errorResult(opContext, err), nil
		}

		if !exportFormats[format] {
			return errorResult(opContext, fmt.Errorf("unsupported format %q", format)), nil
		}
	}

	scale := 1.0

	if _, ok := args["scale"]; ok {
		scale, err = positiveNumberArg(args, "scale")
		if err != nil {
			return errorResult(opContext, err), nil
		}
	}

	// Rendering happens plugin-side and can take a while; use the
	// extended timeout tier.
	result, err := r.bridge.SendLongCommand(ctx, "export_node_as_image", map[string]any{
		"nodeId": nodeID,
		"format": format,
		"scale":  scale,
	})
	if err != nil {
		return errorResult(opContext, err), nil
	}

	msg := fmt.Sprintf("Exported node %q as %s", resultName(result, nodeID), format)

	return successResult([]string{msg}, result), nil
}
