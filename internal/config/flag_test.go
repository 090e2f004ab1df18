package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"-b", "files", "-g", "eu-west-1", "-t", "24", "-m", "3"}, expectPanic: false,
			expected: &Config{S3Bucket: "files", S3Region: "eu-west-1", SessionValidity: 24 * time.Hour, MaxBatchSize: 3}},
		{name: "Test2 unknown flags ignored", args: []string{"-test.v", "-d", "/tmp/x.db", "-c", "conf.json"}, expectPanic: false,
			expected: &Config{DatabasePath: "/tmp/x.db"}},
		{name: "Test3 incorrect validity", args: []string{"-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config, tt.args) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config, tt.args) })
			}
		})
	}
}
