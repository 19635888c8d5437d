package common

import (
	"context"
	"testing"
)

func TestGetAccountFromArgs(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "missing account falls back to default",
			args: map[string]interface{}{},
			want: "default",
		},
		{
			name: "explicit account",
			args: map[string]interface{}{"account": "work"},
			want: "work",
		},
		{
			name: "empty account falls back to default",
			args: map[string]interface{}{"account": ""},
			want: "default",
		},
		{
			name: "account among other tool arguments",
			args: map[string]interface{}{
				"account":    "personal",
				"documentId": "1AbC",
			},
			want: "personal",
		},
		{
			name: "nil args fall back to default",
			args: nil,
			want: "default",
		},
		{
			name: "non-string account falls back to default",
			args: map[string]interface{}{"account": 123},
			want: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAccountFromArgs(ctx, tt.args); got != tt.want {
				t.Errorf("GetAccountFromArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}
