// Package common holds helpers shared by the MCP tool packages:
// account parameter extraction and the instrumented handler wrappers
// that record metrics and audit entries for every tool call.
package common
