package colorbar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// ErrUnknownSpinner is returned for a style missing from the spinner table.
var ErrUnknownSpinner = errors.New("unknown spinner style")

// SpinnerStyle selects the frames of a Spinner.
type SpinnerStyle int

// Spinner styles.
const (
	SpinnerClassic  SpinnerStyle = 0
	SpinnerLine     SpinnerStyle = 9
	SpinnerBraille  SpinnerStyle = 14
	SpinnerEllipsis SpinnerStyle = 59
)

var spinners = map[SpinnerStyle][]string{
	SpinnerClassic:  {"—", "\\", "|", "/"},
	SpinnerLine:     {"|", "/", "-", "\\"},
	SpinnerBraille:  {"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	SpinnerEllipsis: {".  ", ".. ", "...", " ..", "  .", "   "},
}

// Spinner is an indeterminate indicator that redraws one frame in place.
type Spinner struct {
	frames []string
	next   int
	writer io.Writer
}

// Validate reports ErrUnknownSpinner for a style missing from the spinner table.
func (style SpinnerStyle) Validate() error {
	if _, ok := spinners[style]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSpinner, int(style))
	}
	return nil
}

// NewSpinner returns a Spinner writing frames of the given style to w.
func NewSpinner(style SpinnerStyle, w io.Writer) (*Spinner, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Spinner{frames: padFrames(spinners[style]), writer: w}, nil
}

// padFrames right-pads frames to a common display width, so that drawing
// a frame over a wider one leaves no residue.
func padFrames(frames []string) []string {
	widest := 0
	for _, f := range frames {
		if w := uniseg.StringWidth(f); w > widest {
			widest = w
		}
	}
	padded := make([]string, len(frames))
	for i, f := range frames {
		padded[i] = f + strings.Repeat(" ", widest-uniseg.StringWidth(f))
	}
	return padded
}

// Step draws the next frame.
func (s *Spinner) Step() error {
	frame := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	_, err := io.WriteString(s.writer, "\r"+frame)
	return err
}

// DefaultSpinInterval is used by Spin when the given interval is not positive.
const DefaultSpinInterval = 500 * time.Millisecond

// Spin draws a frame every interval until ctx is done, then ends the line.
func (s *Spinner) Spin(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSpinInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.Step(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			_, err := io.WriteString(s.writer, "\n")
			return err
		case <-ticker.C:
			if err := s.Step(); err != nil {
				return err
			}
		}
	}
}
