package common

import (
	"context"
)

// GetAccountFromArgs extracts the account name from request arguments.
// Returns the explicitly provided account name, or "default" when the
// request names none.
func GetAccountFromArgs(_ context.Context, args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
