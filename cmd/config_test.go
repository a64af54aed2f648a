package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Path = "/data/shop.db"

	var buf bytes.Buffer

	writeConfig(&buf, cfg)

	out := buf.String()
	assert.Contains(t, out, "Path: /data/shop.db")
	assert.Contains(t, out, "Query Timeout: 30s")
	assert.Contains(t, out, "Confirm Tier: high")
	assert.Contains(t, out, "Path: (not set)") // schema path left empty
	assert.NotContains(t, out, "File:", "log file line only appears for file output")
}

func TestWriteConfig_FileLogging(t *testing.T) {
	cfg := testConfig()
	cfg.Logging.Output = "file"
	cfg.Logging.File = "/tmp/askdb.log"

	var buf bytes.Buffer

	writeConfig(&buf, cfg)

	assert.Contains(t, buf.String(), "File: /tmp/askdb.log")
}
