package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneFile = "../../scene/testdata/icons.yaml"

func TestRunSVG(t *testing.T) {
	dir := t.TempDir()
	files, err := run(config{scene: sceneFile, format: "svg", outDir: dir, size: 32, seedIDs: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "chevy.svg"), filepath.Join(dir, "badge.svg")}, files)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte(`<svg id="chevy-1" viewBox="0 -15 40 40"`)))
}

func TestRunRasterAndPDF(t *testing.T) {
	dir := t.TempDir()
	files, err := run(config{scene: sceneFile, format: "PNG", outDir: dir, size: 32, seedIDs: true})
	require.NoError(t, err)
	require.Len(t, files, 2)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	files, err = run(config{scene: sceneFile, format: "pdf", outDir: dir, size: 100})
	require.NoError(t, err)
	content, err := os.ReadFile(files[1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []config{
		{scene: sceneFile, format: "gif", outDir: dir, size: 32},
		{scene: sceneFile, format: "png", outDir: dir, size: 0},
		{scene: "missing.toml", format: "svg", outDir: dir, size: 32},
	} {
		_, err := run(cfg)
		assert.Error(t, err)
	}
}
