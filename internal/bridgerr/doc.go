// Package bridgerr defines the error taxonomy surfaced by the command bridge.
package bridgerr
