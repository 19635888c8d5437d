// Package resources provides MCP resources for exposing account and
// document data. Resources are read-only data sources that MCP clients
// can fetch, such as the list of authenticated accounts and recently
// modified documents.
package resources
