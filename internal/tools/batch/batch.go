package batch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status values used in batch results.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one item in a batch operation
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates the results of a batch operation
type Summary struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseStringOrArray parses a tool parameter that accepts either a single
// string or an array of strings. Used for file IDs, list items and email
// addresses so callers can pass one value without wrapping it in an array.
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	switch v := param.(type) {
	case nil:
		return nil, fmt.Errorf("%s is required", paramName)

	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		// Some MCP clients serialize array arguments to a JSON string.
		// A string that parses as a JSON string array is treated as one;
		// anything else stays a literal value.
		if strings.HasPrefix(v, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err == nil {
				return validateItems(arr, paramName)
			}
		}
		return []string{v}, nil

	case []interface{}:
		items := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			items = append(items, str)
		}
		return validateItems(items, paramName)

	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}
}

func validateItems(items []string, paramName string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", paramName)
	}
	for i, item := range items {
		if item == "" {
			return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
		}
	}
	return items, nil
}

// FormatResults renders batch results as an indented JSON summary
func FormatResults(results []Result) string {
	s := Summary{
		Total:   len(results),
		Results: results,
	}

	for _, r := range results {
		if r.Status == StatusSuccess {
			s.Successful++
		} else {
			s.Failed++
		}
	}

	jsonBytes, _ := json.MarshalIndent(s, "", "  ")
	return string(jsonBytes)
}

// ProcessBatch runs fn on each ID in order and collects per-item results.
// A failing item does not stop the batch; its error is recorded and the
// remaining items still run.
func ProcessBatch(ids []string, fn func(id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))

	for _, id := range ids {
		result := Result{ID: id}
		res, err := fn(id)
		if err != nil {
			result.Status = StatusError
			result.Error = err.Error()
		} else {
			result.Status = StatusSuccess
			result.Result = res
		}
		results = append(results, result)
	}

	return results
}
