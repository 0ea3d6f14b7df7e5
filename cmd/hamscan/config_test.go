package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, defaultMaxDistance, cfg.MaxDistance)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "full", cfg.Mode)
	assert.Equal(t, "auto", cfg.Kernel)
	assert.Empty(t, cfg.Source)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-f", "hashes.txt", "-d", "3", "-workers", "4", "-mode", "within",
		"-adjacency", "-report-every", "1024", "-report-min-interval", "2s",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "hashes.txt", cfg.Source)
	assert.Equal(t, 3, cfg.MaxDistance)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "within", cfg.Mode)
	assert.True(t, cfg.Adjacency)
	assert.Equal(t, uint64(1024), cfg.ReportEvery)
	assert.Equal(t, 2*time.Second, cfg.ReportMinInterval)
}

func TestParseConfigFile(t *testing.T) {
	path := writeFile(t, "hamscan.yaml", `
source: from-file.txt
max_distance: 7
workers: 2
adjacency: true
report_min_interval: 500ms
log_format: json
`)

	cfg, err := parseConfig([]string{"-config", path, "-d", "9"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "from-file.txt", cfg.Source)
	assert.Equal(t, 9, cfg.MaxDistance, "flag overrides file")
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Adjacency)
	assert.Equal(t, 500*time.Millisecond, cfg.ReportMinInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "full", cfg.Mode, "unset keys keep defaults")
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative distance", args: []string{"-d", "-1"}},
		{name: "zero workers", args: []string{"-workers", "0"}},
		{name: "unknown mode", args: []string{"-mode", "sideways"}},
		{name: "unknown kernel", args: []string{"-kernel", "avx9000"}},
		{name: "interval not power of two", args: []string{"-report-every", "1000"}},
		{name: "zero bucket width", args: []string{"-bucket-width", "0"}},
		{name: "unknown log format", args: []string{"-log-format", "xml"}},
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "missing config file", args: []string{"-config", "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestParseConfigBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "workers: [1, 2\n")
	_, err := parseConfig([]string{"-config", path}, io.Discard)
	assert.Error(t, err)
}

func TestPhysicalCores(t *testing.T) {
	assert.GreaterOrEqual(t, physicalCores(), 1)
}
