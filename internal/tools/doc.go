// Package tools declares the MCP tool surface of the bridge.
//
// Each tool validates its parameters against a JSON schema plus
// handler-side constraints (positive sizes, non-empty id lists) before
// anything reaches the wire, forwards the command through the bridge,
// and maps the outcome to a uniform payload: success carries a
// human-readable message list plus the raw result data, failure carries
// the error message plus a context tag naming the operation.
package tools
