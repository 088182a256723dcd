package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oerlikon/colorbar"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("color: green\nbright: true\nlength: 12\nestimate: true\ninterval: 5ms\n"))
	require.NoError(t, err)
	assert.Equal(t, "green", cfg.Color)
	assert.True(t, cfg.Bright)
	assert.Equal(t, 12, cfg.Length)
	assert.True(t, cfg.Percentage)
	assert.True(t, cfg.Estimate)
	assert.Equal(t, 10, cfg.Steps)

	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, "5ms", interval.String())
}

func TestParseConfigInvalid(t *testing.T) {
	for _, data := range []string{
		"steps: 0\n",
		"interval: soon\n",
		"spin: [1]\n",
		"length: [\n",
		"spinner_style: 3\n",
	} {
		_, err := ParseConfig([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestConfigLengthType(t *testing.T) {
	cfg, err := ParseConfig([]byte("length: 10.5\n"))
	require.NoError(t, err)

	_, err = colorbar.New(cfg.barOptions()...)
	var lengthErr *colorbar.LengthTypeError
	assert.True(t, errors.As(err, &lengthErr))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunSteps(t *testing.T) {
	out, err := execute(t, "--steps", "2", "--interval", "1ms", "--length", "4", "--color", "red")
	require.NoError(t, err)
	expect := "" +
		"\r\x1b[31m░░░░ 0%\x1b[0m" +
		"\r\x1b[31m██░░ 50%\x1b[0m" +
		"\r\x1b[31m████ 100%\x1b[0m\n" +
		colorbar.Framed("Done") + "\n"
	assert.Equal(t, expect, out)
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorbar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: blue\nlength: 2\nsteps: 1\ninterval: 1ms\npercentage: false\n"), 0o644))

	out, err := execute(t, "--config", path, "--color", "yellow", "--bright")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\r\x1b[93m░░\x1b[0m\r\x1b[93m██\x1b[0m\n"), "%q", out)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))

	out, err := execute(t, "--file", path, "--length", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "\r\x1b[0m████ 100%\x1b[0m\n")
}

func TestRunUnknownColor(t *testing.T) {
	_, err := execute(t, "--color", "purple")
	var colorErr *colorbar.UnknownColorError
	assert.True(t, errors.As(err, &colorErr))
}

func TestRunSpinner(t *testing.T) {
	out, err := execute(t, "--steps", "1", "--interval", "1ms", "--spin", "10ms", "--spinner-style", "9")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\r|\n"), "%q", out)

	// an unknown style fails before the bar is drawn
	out, err = execute(t, "--steps", "1", "--interval", "1ms", "--spin", "10ms", "--spinner-style", "3")
	assert.ErrorIs(t, err, colorbar.ErrUnknownSpinner)
	assert.Equal(t, "", out)
}

func TestCopyFileReadError(t *testing.T) {
	bar, err := colorbar.New(colorbar.OptionWriter(io.Discard))
	require.NoError(t, err)

	// reading a directory fails after it was opened
	err = copyFile(bar, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}
