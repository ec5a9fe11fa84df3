package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// Colors (ANSI).
const (
	reset     = "\x1b[0m"
	red       = "\x1b[31m"
	green     = "\x1b[32m"
	magenta   = "\x1b[35m"
	cyanBold  = "\x1b[1;36m"
	blackFG   = "\x1b[30m"
	pinkLine  = "\x1b[48;5;224m" // light pink for deleted lines
	greenLine = "\x1b[48;5;194m" // light green for added lines
)

// RenderNumbered returns one row per op, in order, formatted as:
//
//	<old line number> <new line number> <marker> <text>
//
// The marker is ' ' for unchanged lines, '-' for deletions, and '+' for insertions. A line number column is blank when the op has no line on that side. Both
// number columns are right-aligned to the width of the largest line number. Rows are joined with "\n"; a diff without ops renders as "".
//
// If color, deleted rows are red and inserted rows are green.
func (d Diff) RenderNumbered(color bool) string {
	if len(d.Ops) == 0 {
		return ""
	}

	maxLine := 0
	for _, op := range d.Ops {
		maxLine = max(maxLine, op.OldLine, op.NewLine)
	}
	w := len(strconv.Itoa(maxLine))

	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}

	rows := make([]string, 0, len(d.Ops))
	for _, op := range d.Ops {
		marker := ' '
		code := ""
		switch op.Op {
		case OpDelete:
			marker = '-'
			code = red
		case OpInsert:
			marker = '+'
			code = green
		}
		row := fmt.Sprintf("%*s %*s %c %s", w, num(op.OldLine), w, num(op.NewLine), marker, op.Text)
		if color && code != "" {
			row = code + row + reset
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, defaultEOL)
}

// RenderPretty returns a human-oriented, colorized rendering of d without unified-diff hunk headers. Each line is prefixed like a unified diff: " " for context,
// "-" for deletions, and "+" for insertions.
//
// If fromFilename and toFilename are both empty, no header is printed. Otherwise a single cyan header line is emitted in one of these forms:
//   - "add <to>:" when only toFilename is set
//   - "delete <from>:" when only fromFilename is set
//   - "<name>:" when both are equal
//   - "<from> -> <to>:" otherwise
//
// contextSize controls how many unchanged lines are shown around changes (see Hunks). If there are no changes and no header is requested, the result is the
// empty string.
func (d Diff) RenderPretty(fromFilename string, toFilename string, contextSize int) string {
	var out []string

	if !(fromFilename == "" && toFilename == "") {
		header := ""
		switch {
		case fromFilename == "" && toFilename != "":
			header = fmt.Sprintf("add %s:", toFilename)
		case fromFilename != "" && toFilename == "":
			header = fmt.Sprintf("delete %s:", fromFilename)
		case fromFilename == toFilename:
			header = fmt.Sprintf("%s:", fromFilename)
		default:
			header = fmt.Sprintf("%s -> %s:", fromFilename, toFilename)
		}
		out = append(out, cyanBold+header+reset)
	}

	for _, h := range d.Hunks(contextSize) {
		for _, op := range h.Ops {
			switch op.Op {
			case OpDelete:
				out = append(out, blackFG+pinkLine+"-"+op.Text+reset)
			case OpInsert:
				out = append(out, blackFG+greenLine+"+"+op.Text+reset)
			default:
				out = append(out, " "+op.Text)
			}
		}
	}

	return strings.Join(out, defaultEOL)
}

// RenderUnifiedDiff returns a unified diff. If color, the diff will include ANSI color markers.
//
// Hunk headers use the usual "@@ -oldStart,oldCount +newStart,newCount @@" form. Since the line model ignores a final '\n', no "\ No newline at end of file"
// markers are emitted.
func (d Diff) RenderUnifiedDiff(color bool, fromFilename string, toFilename string, contextSize int) string {
	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	var out []string

	// File headers
	out = append(out, colorize("--- "+fromFilename, cyanBold))
	out = append(out, colorize("+++ "+toFilename, cyanBold))

	for _, h := range d.Hunks(contextSize) {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		out = append(out, colorize(header, magenta))
		for _, op := range h.Ops {
			switch op.Op {
			case OpDelete:
				out = append(out, colorize("-"+op.Text, red))
			case OpInsert:
				out = append(out, colorize("+"+op.Text, green))
			default:
				out = append(out, " "+op.Text)
			}
		}
	}

	return strings.Join(out, "\n")
}
