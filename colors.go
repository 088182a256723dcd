package colorbar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/colorstring"
)

// brightOffset turns a base foreground code into its bright variant.
const brightOffset = 60

// colorCodes maps the recognized color keys to ANSI foreground codes.
var colorCodes = map[string]int{
	"black":   30,
	"red":     31,
	"green":   32,
	"yellow":  33,
	"blue":    34,
	"magenta": 35,
	"cyan":    36,
	"white":   37,
	"none":    0,
}

// ColorKeys returns the recognized color keys in code order.
func ColorKeys() []string {
	return []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white", "none"}
}

// ColorCode resolves a case-insensitive color name to its ANSI attribute code.
// The empty name means no color.
func ColorCode(name string, bright bool) (int, error) {
	key := strings.ToLower(name)
	if key == "" {
		key = "none"
	}
	code, ok := colorCodes[key]
	if !ok {
		return 0, &UnknownColorError{Color: name, Keys: ColorKeys()}
	}
	if bright {
		code += brightOffset
	}
	return code, nil
}

// UnknownColorError is returned when a color name is not one of ColorKeys.
type UnknownColorError struct {
	Color string
	Keys  []string
}

func (e *UnknownColorError) Error() string {
	return fmt.Sprintf("unknown color key %q, possible keys are: %s", e.Color, strings.Join(e.Keys, ", "))
}

// LengthTypeError is returned when the bar length is not an integer.
type LengthTypeError struct {
	Value interface{}
}

func (e *LengthTypeError) Error() string {
	return fmt.Sprintf("length must be an int, but %T was given", e.Value)
}

// escapes builds the color-set prefix and the reset suffix for code.
func escapes(code int) (prefix, suffix string) {
	c := colorstring.Colorize{
		Colors: map[string]string{
			"bar":   strconv.Itoa(code),
			"reset": "0",
		},
	}
	return c.Color("[bar]"), c.Color("[reset]")
}

var framer = colorstring.Colorize{
	Colors: map[string]string{
		"framed":   "51",
		"unframed": "54",
	},
}

// Framed wraps s in the terminal "framed" attribute.
func Framed(s string) string {
	return framer.Color("[framed]") + s + framer.Color("[unframed]")
}
