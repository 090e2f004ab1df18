package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJson_PartialOverride(t *testing.T) {
	p := writeTemp(t, `{
		"s3_bucket": "from-json",
		"s3_use_path_style": true,
		"share_url_ttl": "48h",
		"browse_url_ttl": 60000000000,
		"max_batch_size": 2
	}`)

	var c Config
	c.LoadDefaults()
	parseJson(&c, []string{"-c", p})

	assert.Equal(t, "from-json", c.S3Bucket)
	assert.True(t, c.S3UsePathStyle)
	assert.Equal(t, 48*time.Hour, c.ShareURLTTL)
	assert.Equal(t, time.Minute, c.BrowseURLTTL)
	assert.Equal(t, 2, c.MaxBatchSize)
	assert.Equal(t, "us-east-1", c.S3Region, "absent keys keep the previous value")
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	var c Config
	c.LoadDefaults()
	want := c

	parseJson(&c, []string{"-b", "x"})
	assert.Equal(t, want, c)
}

func TestParseJson_Errors(t *testing.T) {
	bad := writeTemp(t, `{"s3_bucket": 1}`)

	var c Config
	assert.Panics(t, func() { parseJson(&c, []string{"-config", bad}) })
	assert.Panics(t, func() { parseJson(&c, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}) })
}
