package colorbar

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerStep(t *testing.T) {
	buf := strings.Builder{}
	spinner, err := NewSpinner(SpinnerClassic, &buf)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, spinner.Step())
	}
	result := buf.String()
	expect := "\r—\r\\\r|\r/\r—"
	if result != expect {
		t.Errorf("Render miss-match\nResult: %q\nExpect: %q", result, expect)
	}
}

func TestSpinnerStyles(t *testing.T) {
	for style, frames := range spinners {
		spinner, err := NewSpinner(style, &strings.Builder{})
		require.NoError(t, err)
		assert.Len(t, spinner.frames, len(frames))
	}

	_, err := NewSpinner(SpinnerStyle(42), &strings.Builder{})
	assert.ErrorIs(t, err, ErrUnknownSpinner)
}

func TestPadFrames(t *testing.T) {
	assert.Equal(t, []string{"ab", "c ", "  "}, padFrames([]string{"ab", "c", ""}))
	assert.Equal(t, []string{"世 ", "abc"}, padFrames([]string{"世", "abc"}))
}

func TestSpinCancel(t *testing.T) {
	buf := strings.Builder{}
	spinner, err := NewSpinner(SpinnerLine, &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, spinner.Spin(ctx, time.Hour))
	assert.Equal(t, "\r|\n", buf.String())
}

func TestSpinNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		buf := strings.Builder{}
		spinner, err := NewSpinner(SpinnerLine, &buf)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NotPanics(t, func() {
			assert.NoError(t, spinner.Spin(ctx, interval))
		})
		assert.Equal(t, "\r|\n", buf.String())
	}
}

func TestSpinTicks(t *testing.T) {
	buf := strings.Builder{}
	spinner, err := NewSpinner(SpinnerLine, &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	require.NoError(t, spinner.Spin(ctx, 20*time.Millisecond))
	result := buf.String()
	assert.True(t, strings.HasSuffix(result, "\n"))
	assert.GreaterOrEqual(t, strings.Count(result, "\r"), 3)
}
