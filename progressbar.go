package colorbar

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	ansi "github.com/k0kubun/go-ansi"
)

// ErrNegativeLength is returned when the bar length is below zero.
var ErrNegativeLength = errors.New("length must not be negative")

// ErrLengthTooLarge is returned when the bar length does not fit in an int.
var ErrLengthTooLarge = errors.New("length does not fit in an int")

// ProgressBar is a single-line progress bar that redraws itself in place.
// It is not safe for concurrent use and assumes it owns the current output line.
type ProgressBar struct {
	state  state
	config config
}

type state struct {
	progress float64

	// only maintained when estimating time
	delta      float64
	lastSample time.Time
}

type config struct {
	color  string
	bright bool
	length interface{} // validated into width by New

	width     int
	colorCode int
	prefix    string
	suffix    string

	writer io.Writer
	theme  Theme

	// append the whole-number percentage
	showPercentage bool

	// append the remaining seconds, estimated from the speed
	// between the last two updates
	estimateTime bool

	// clock, replaced in tests
	now func() time.Time
}

// Option is the type all options need to adhere to.
type Option func(p *ProgressBar)

// OptionColor sets the bar color by name, see ColorKeys.
func OptionColor(name string) Option {
	return func(p *ProgressBar) {
		p.config.color = name
	}
}

// OptionBright selects the bright variant of the color.
func OptionBright(bright bool) Option {
	return func(p *ProgressBar) {
		p.config.bright = bright
	}
}

// OptionLength sets the number of glyph slots.
func OptionLength(length int) Option {
	return func(p *ProgressBar) {
		p.config.length = length
	}
}

// OptionLengthValue sets the number of glyph slots from a loosely typed value,
// such as one decoded from a config file. New fails unless it holds an integer.
func OptionLengthValue(v interface{}) Option {
	return func(p *ProgressBar) {
		p.config.length = v
	}
}

// OptionShowPercentage enables the percentage readout. Enabled by default.
func OptionShowPercentage(show bool) Option {
	return func(p *ProgressBar) {
		p.config.showPercentage = show
	}
}

// OptionEstimateTime enables the remaining time readout.
func OptionEstimateTime(estimate bool) Option {
	return func(p *ProgressBar) {
		p.config.estimateTime = estimate
	}
}

// OptionTheme sets the glyphs of the bar.
func OptionTheme(theme Theme) Option {
	return func(p *ProgressBar) {
		p.config.theme = theme
	}
}

// OptionWriter sets the output writer (defaults to an ANSI-aware os.Stdout).
func OptionWriter(w io.Writer) Option {
	return func(p *ProgressBar) {
		p.config.writer = w
	}
}

// New constructs a ProgressBar. It fails on an unknown color, a non-integer or
// negative length, or an invalid theme.
func New(options ...Option) (*ProgressBar, error) {
	b := ProgressBar{
		config: config{
			length:         40,
			writer:         ansi.NewAnsiStdout(),
			theme:          defaultTheme,
			showPercentage: true,
			now:            time.Now,
		},
	}

	for _, o := range options {
		o(&b)
	}

	code, err := ColorCode(b.config.color, b.config.bright)
	if err != nil {
		return nil, err
	}
	width, err := lengthOf(b.config.length)
	if err != nil {
		return nil, err
	}
	if err := b.config.theme.validate(); err != nil {
		return nil, err
	}

	b.config.colorCode = code
	b.config.width = width
	b.config.prefix, b.config.suffix = escapes(code)
	b.state.lastSample = b.config.now()

	return &b, nil
}

func lengthOf(v interface{}) (int, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		return unsignedLength(uint64(x))
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		return unsignedLength(uint64(x))
	case uint64:
		return unsignedLength(x)
	case uintptr:
		return unsignedLength(uint64(x))
	default:
		return 0, &LengthTypeError{Value: v}
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: %d", ErrLengthTooLarge, n)
	}
	return int(n), nil
}

func unsignedLength(n uint64) (int, error) {
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: %d", ErrLengthTooLarge, n)
	}
	return int(n), nil
}

// Progress returns the last value passed to Update.
func (p *ProgressBar) Progress() float64 {
	return p.state.progress
}

// Start resets the bar to zero and renders it. Pair it with Close.
func (p *ProgressBar) Start() error {
	if err := p.Update(0); err != nil {
		return err
	}
	if p.config.estimateTime {
		p.state.lastSample = p.config.now()
	}
	return nil
}

// Update sets the progress and redraws the bar. Values outside [0, 1] are
// rendered as given.
func (p *ProgressBar) Update(progress float64) error {
	if p.config.estimateTime {
		p.state.delta = progress - p.state.progress
	}
	p.state.progress = progress
	return p.render()
}

// Close terminates the bar line with a newline.
func (p *ProgressBar) Close() error {
	return writeString(p.config, "\n")
}

// Run starts the bar, calls fn and closes the bar on every exit path,
// including a panic in fn. The error returned by fn is passed through as is.
func (p *ProgressBar) Run(fn func(*ProgressBar) error) (err error) {
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := p.Start(); err != nil {
		return err
	}
	return fn(p)
}

// String returns the current rendering of the bar. When time estimation is
// enabled every call takes a new time sample.
func (p *ProgressBar) String() string {
	c := p.config
	completed := int(math.Floor(p.state.progress * float64(c.width)))

	var sb strings.Builder
	sb.WriteString(c.prefix)
	sb.WriteString(strings.Repeat(c.theme.Completed, nonNegative(completed)))
	sb.WriteString(strings.Repeat(c.theme.Uncompleted, nonNegative(c.width-completed)))
	if c.showPercentage {
		sb.WriteString(fmt.Sprintf(" %.0f%%", p.state.progress*100))
	}
	if c.estimateTime {
		if left, ok := p.remaining(); ok {
			sb.WriteString(fmt.Sprintf(" (%.1fs)", left))
		}
	}
	sb.WriteString(c.suffix)
	return sb.String()
}

// remaining samples the clock and estimates the seconds left from the speed
// of the last update. It reports false when no estimate is available.
func (p *ProgressBar) remaining() (float64, bool) {
	now := p.config.now()
	dt := now.Sub(p.state.lastSample).Seconds()
	p.state.lastSample = now
	if dt == 0 {
		return 0, false
	}
	speed := p.state.delta / dt
	if speed == 0 {
		return 0, false
	}
	left := (1 - p.state.progress) / speed
	if math.IsNaN(left) || math.IsInf(left, 0) {
		return 0, false
	}
	return left, true
}

func (p *ProgressBar) render() error {
	return writeString(p.config, "\r"+p.String())
}

func writeString(c config, str string) error {
	if _, err := io.WriteString(c.writer, str); err != nil {
		return err
	}
	if f, ok := c.writer.(*os.File); ok {
		// ignore any errors in Sync(), as stdout
		// can't be synced on some operating systems
		// like Debian 9 (Stretch)
		f.Sync()
	}
	return nil
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
