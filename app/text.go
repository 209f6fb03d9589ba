package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var textFont = &proggy.TinySZ8pt7b

// textMetrics returns the cell size and baseline offset of textFont.
func textMetrics() (width, height, baseline int16) {
	_, outbox := tinyfont.LineWidth(textFont, "0")
	width = int16(outbox)
	height = int16(textFont.YAdvance)
	if height <= 0 {
		height = 11
	}
	return width, height, height * 3 / 4
}

// drawLines writes lines top-down from (x0, y0), wrapping at the display
// edge. It returns the y below the last line drawn.
func drawLines(d drivers.Displayer, x0, y0 int16, lines []string, fg color.RGBA) int16 {
	fw, fh, base := textMetrics()
	if fw <= 0 {
		return y0
	}
	maxW, maxH := d.Size()
	cols := (maxW - x0) / fw
	if cols <= 0 {
		cols = 1
	}

	y := y0
	for _, line := range lines {
		for len(line) > 0 {
			if y+fh > maxH {
				return y
			}
			chunk, rest := takeRunes(line, cols)
			x := x0
			for _, r := range chunk {
				tinyfont.DrawChar(d, textFont, x, y+base, r, fg)
				x += fw
			}
			y += fh
			line = strings.TrimLeft(rest, " ")
		}
	}
	return y
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
