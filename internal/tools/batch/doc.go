// Package batch supports tools that accept one or many targets in a
// single call. It parses parameters that may be a single value, an
// array or a JSON-encoded string array, runs the per-item operation,
// and formats the per-item outcomes so partial failures stay visible.
package batch
