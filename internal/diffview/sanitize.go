package diffview

import (
	"strings"
	"unicode/utf8"
)

// DisplayText makes a line from remote content safe to draw in a terminal.
// A trailing carriage return is dropped, tabs are kept, and every other C0
// control byte, DEL and C1 control is shown in caret notation (ESC is "^[")
// so nothing in the content can move the cursor or start an escape sequence.
// Row.Text keeps the raw line.
func DisplayText(line string) string {
	line = strings.TrimSuffix(line, "\r")
	if isPrintable(line) {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 8)
	for _, r := range line {
		switch {
		case r == '\t':
			b.WriteRune(r)
		case r < 0x20:
			b.WriteByte('^')
			b.WriteRune(r + '@')
		case r == 0x7f:
			b.WriteString("^?")
		case r >= 0x80 && r <= 0x9f:
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayLines applies DisplayText to every line
func DisplayLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = DisplayText(l)
	}
	return out
}

func isPrintable(s string) bool {
	for _, r := range s {
		if (r < 0x20 && r != '\t') || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return false
		}
	}
	return true
}
