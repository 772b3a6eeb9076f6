package asciify

import (
	"fmt"
	"strings"
)

// ESC is the ANSI escape character.
const ESC = "\u001b"

// RenderToANSI renders a row-major cell sequence to a truecolor ANSI
// string, one line per grid row. The foreground color is emitted with
// 24-bit escape codes (38;2;r;g;b); adjacent cells with the same color
// share one escape sequence, and each line ends with a reset.
func RenderToANSI(cells []CellOutput, gridWidth int) string {
	var sb strings.Builder
	var current RGBA
	haveColor := false

	for i, cell := range cells {
		if i > 0 && i%gridWidth == 0 {
			sb.WriteString(ESC + "[0m\n")
			haveColor = false
		}
		fg := cell.Color
		if !haveColor || fg.R != current.R || fg.G != current.G || fg.B != current.B {
			sb.WriteString(fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, fg.R, fg.G, fg.B))
			current = fg
			haveColor = true
		}
		sb.WriteRune(cell.Char)
	}
	if len(cells) > 0 {
		sb.WriteString(ESC + "[0m\n")
	}
	return sb.String()
}

// RenderToText renders a row-major cell sequence as plain text with no
// escape sequences, one line per grid row.
func RenderToText(cells []CellOutput, gridWidth int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 && i%gridWidth == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(cell.Char)
	}
	if len(cells) > 0 {
		sb.WriteByte('\n')
	}
	return sb.String()
}
