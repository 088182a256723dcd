package colorbar

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
)

// ErrInvalidGlyph is returned when a theme glyph is not a single grapheme cluster.
var ErrInvalidGlyph = errors.New("glyph must be a single grapheme cluster")

// Theme defines the glyphs of the bar.
type Theme struct {
	Completed   string
	Uncompleted string
}

var defaultTheme = Theme{Completed: "█", Uncompleted: "░"}

func (t Theme) validate() error {
	for _, g := range []string{t.Completed, t.Uncompleted} {
		if uniseg.GraphemeClusterCount(g) != 1 {
			return fmt.Errorf("%w: %q", ErrInvalidGlyph, g)
		}
	}
	return nil
}
