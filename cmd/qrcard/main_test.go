package main

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/qrcard/internal/batch"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args,
		"--config", filepath.Join(dir, "none.yaml"),
		"--env", filepath.Join(dir, "none.env"),
		"--log-level", "error",
	))
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) (input, bgDir, outDir string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "c1.csv")
	bgDir = filepath.Join(dir, "bg")
	outDir = filepath.Join(dir, "cards")
	csv := "STT,Tên Thánh,Họ,Tên\n1,Maria,Tran,An\n2,Giuse,Le,Binh\nTổng,,,\n"
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o644))
	require.NoError(t, os.MkdirAll(bgDir, 0o755))
	return input, bgDir, outDir
}

func TestGenerateAndVerify(t *testing.T) {
	input, bgDir, outDir := setup(t)
	require.NoError(t, imaging.Save(imaging.New(1000, 700, color.White), filepath.Join(bgDir, "c1.png")))

	out, err := run(t, input, outDir, "--background-dir", bgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 cards in "+outDir)

	out, err = run(t, "verify", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "2/2 cards verified")
}

func TestGenerateDefaultOutputDir(t *testing.T) {
	input, bgDir, _ := setup(t)
	require.NoError(t, imaging.Save(imaging.New(1000, 700, color.White), filepath.Join(bgDir, "c1.png")))
	root := filepath.Join(t.TempDir(), "out")
	t.Setenv("QRCARD_OUTPUT_ROOT", root)

	out, err := run(t, input, "--background-dir", bgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 cards in "+filepath.Join(root, "c1"))
	assert.FileExists(t, filepath.Join(root, "c1", "Maria Tran An c1.png"))
}

func TestGenerateMissingBackground(t *testing.T) {
	input, bgDir, outDir := setup(t)

	out, err := run(t, input, outDir, "--background-dir", bgDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrBackgroundNotFound))
	assert.NotContains(t, out, "Generated")
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateBadMode(t *testing.T) {
	input, bgDir, outDir := setup(t)
	_, err := run(t, input, outDir, "--background-dir", bgDir, "--mode", "poster")
	assert.Error(t, err)
}

func TestGenerateArgs(t *testing.T) {
	_, err := run(t)
	assert.Error(t, err)
	_, err = run(t, "a.csv", "out", "extra")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	out, err := run(t, "preview", "Maria", "Tran", "An", "c1")
	require.NoError(t, err)
	assert.Greater(t, len(out), 100)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
