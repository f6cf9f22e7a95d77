package utils

import (
	"fmt"
	"image/color"
	"regexp"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColourValidate accepts #rrggbb and #rrggbbaa.
func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

func ColourParse(s string) (c color.RGBA, err error) {
	if !ColourValidate(s) {
		return c, fmt.Errorf("invalid colour %q, expected #rrggbb or #rrggbbaa", s)
	}
	c.A = 0xff
	if len(s) == 7 {
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	} else {
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c, err
}

// ColourString formats c the way ColourParse reads it.
func ColourString(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
