package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watermark "github.com/Superoldman96/GeminiWatermarkTool"
)

func TestParseSizeClass(t *testing.T) {
	tests := []struct {
		in   string
		exp  watermark.SizeClass
		fail bool
	}{
		{"", watermark.SizeAuto, false},
		{"auto", watermark.SizeAuto, false},
		{"Small", watermark.SizeSmall, false},
		{"LARGE", watermark.SizeLarge, false},
		{"huge", 0, true},
	}
	for _, tt := range tests {
		got, err := parseSizeClass(tt.in)
		if tt.fail {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.exp, got, tt.in)
	}
}

func TestParseRegion(t *testing.T) {
	rect, err := parseRegion("1840,1340,96,96")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(1840, 1340, 1936, 1436), rect)

	_, err = parseRegion("1,2,3")
	assert.Error(t, err)
	_, err = parseRegion("a,b,c,d")
	assert.Error(t, err)
}

func TestLoadJobConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode: add
input_dir: ./in
output_dir: ./out
size: large
logo_value: 200
jobs: 4
`), 0o644))

	cfg, err := loadJobConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "add", cfg.Mode)
	assert.Equal(t, "./in", cfg.InputDir)
	assert.Equal(t, "large", cfg.Size)
	assert.Equal(t, 200, cfg.LogoValue)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadJobConfigValidation(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := loadJobConfig(write("noin.yaml", "mode: remove\noutput_dir: ./out\n"))
	assert.Error(t, err, "input_dir required")

	_, err = loadJobConfig(write("noout.yaml", "mode: remove\ninput_dir: ./in\n"))
	assert.Error(t, err, "output_dir required outside detect mode")

	// Detect mode needs no output directory.
	cfg, err := loadJobConfig(write("detect.yaml", "mode: detect\ninput_dir: ./in\n"))
	require.NoError(t, err)
	assert.Equal(t, "detect", cfg.Mode)

	_, err = loadJobConfig(write("badmode.yaml", "mode: shred\ninput_dir: ./in\noutput_dir: ./out\n"))
	assert.Error(t, err)
}
