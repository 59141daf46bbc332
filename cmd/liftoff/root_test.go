package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liftoff-dev/liftoff/internal/dispatch"
)

func TestParseActions(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []string
		want        dispatch.ActionRequest
		wantUnknown string
	}{
		{
			name:   "short tokens",
			tokens: []string{"d", "t", "s", "r"},
			want:   dispatch.ActionRequest{InitDB: true, RunTests: true, OpenShell: true, RunServer: true},
		},
		{
			name:   "long tokens",
			tokens: []string{"create-db", "run-server"},
			want:   dispatch.ActionRequest{InitDB: true, RunServer: true},
		},
		{
			name:   "order of tokens is irrelevant",
			tokens: []string{"r", "d"},
			want:   dispatch.ActionRequest{InitDB: true, RunServer: true},
		},
		{
			name:   "repeated token is idempotent",
			tokens: []string{"t", "t", "test"},
			want:   dispatch.ActionRequest{RunTests: true},
		},
		{
			name:        "unknown token",
			tokens:      []string{"d", "deploy"},
			wantUnknown: "deploy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown := parseActions(tt.tokens)
			assert.Equal(t, tt.wantUnknown, unknown)
			if tt.wantUnknown == "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
