package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{
			name:  "braced substitution",
			input: "org_id: ${ORG_ID}",
			env:   map[string]string{"ORG_ID": "acme"},
			want:  "org_id: acme",
		},
		{
			name:  "bare dollar substitution",
			input: "org_id: $ORG_ID",
			env:   map[string]string{"ORG_ID": "acme"},
			want:  "org_id: acme",
		},
		{
			name:  "missing variable expands to empty",
			input: "webhook: ${MISSING_WEBHOOK}",
			env:   map[string]string{},
			want:  "webhook: ",
		},
		{
			name:  "multiple substitutions",
			input: "url: ${PROTOCOL}://${HOST}",
			env:   map[string]string{"PROTOCOL": "https", "HOST": "example.com"},
			want:  "url: https://example.com",
		},
		{
			name:  "no variables unchanged",
			input: "domain: legal",
			env:   map[string]string{},
			want:  "domain: legal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			result := ExpandEnv([]byte(tt.input))
			assert.Equal(t, tt.want, string(result))
		})
	}
}

func TestExpandEnvWithEmptyInput(t *testing.T) {
	assert.Equal(t, "", string(ExpandEnv([]byte(""))))
}
