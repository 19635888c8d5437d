package batch

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr bool
	}{
		{
			name:  "single string",
			input: "1AbCdEfGhIjK",
			want:  []string{"1AbCdEfGhIjK"},
		},
		{
			name:  "array of strings",
			input: []interface{}{"1AbC", "2DeF", "3GhI"},
			want:  []string{"1AbC", "2DeF", "3GhI"},
		},
		{
			name:    "nil input",
			input:   nil,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   []interface{}{},
			wantErr: true,
		},
		{
			name:    "array with non-string",
			input:   []interface{}{"1AbC", 123, "3GhI"},
			wantErr: true,
		},
		{
			name:    "array with empty string",
			input:   []interface{}{"1AbC", "", "3GhI"},
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   123,
			wantErr: true,
		},
		{
			name:  "JSON-encoded string array",
			input: `["1AbC", "2DeF", "3GhI"]`,
			want:  []string{"1AbC", "2DeF", "3GhI"},
		},
		{
			name:  "JSON-encoded single element array",
			input: `["1AbC"]`,
			want:  []string{"1AbC"},
		},
		{
			name:    "JSON-encoded empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "JSON-encoded array with empty element",
			input:   `["1AbC", ""]`,
			wantErr: true,
		},
		{
			name:  "malformed JSON stays a literal value",
			input: `[not json`,
			want:  []string{`[not json`},
		},
		{
			name:  "bullet item starting with a bracket",
			input: `[DRAFT] release notes`,
			want:  []string{`[DRAFT] release notes`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, "fileIds")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStringOrArray() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !stringSliceEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{ID: "1AbC", Status: StatusSuccess, Result: "deleted"},
		{ID: "2DeF", Status: StatusSuccess, Result: "deleted"},
		{ID: "3GhI", Status: StatusError, Error: "file not found"},
	}

	output := FormatResults(results)

	var s Summary
	if err := json.Unmarshal([]byte(output), &s); err != nil {
		t.Fatalf("Failed to parse output JSON: %v", err)
	}

	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.Successful != 2 {
		t.Errorf("Successful = %d, want 2", s.Successful)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if len(s.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(s.Results))
	}
}

func TestProcessBatch_PartialFailure(t *testing.T) {
	ids := []string{"1AbC", "2DeF", "3GhI"}

	fn := func(id string) (string, error) {
		if id == "2DeF" {
			return "", errors.New("permission denied")
		}
		return "shared " + id, nil
	}

	results := ProcessBatch(ids, fn)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Status != StatusSuccess || results[0].Result != "shared 1AbC" {
		t.Errorf("results[0] = %+v, want success 'shared 1AbC'", results[0])
	}
	if results[1].Status != StatusError || results[1].Error != "permission denied" {
		t.Errorf("results[1] = %+v, want error 'permission denied'", results[1])
	}
	if results[2].Status != StatusSuccess || results[2].Result != "shared 3GhI" {
		t.Errorf("results[2] = %+v, want success 'shared 3GhI'", results[2])
	}
}

func TestProcessBatch_AllSucceed(t *testing.T) {
	results := ProcessBatch([]string{"1AbC"}, func(id string) (string, error) {
		return "ok", nil
	})

	if len(results) != 1 || results[0].Status != StatusSuccess {
		t.Errorf("results = %+v, want one success", results)
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
