package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/centuriae/revtrail/internal/diff"
	"github.com/centuriae/revtrail/internal/termtext"
	"github.com/centuriae/revtrail/internal/timeline"
)

const (
	MarkerActive   = "●"
	MarkerInactive = "○"

	ellipsis = "…"
	tabWidth = 4
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
)

// Text writes a terminal rendering of result:
//
//	○ ○ ●
//	<subject>
//	<prev> → <cur>  <date>  +N -M
//
//	<numbered diff rows>
//
// Rows wider than opts.Width are truncated with an ellipsis.
func Text(w io.Writer, result timeline.RenderResult, markers []timeline.Marker, opts Options) error {
	var b strings.Builder

	text := opts.TextOptions()

	if len(markers) > 0 {
		b.WriteString(MarkerStrip(markers, opts.Width, text))
		b.WriteByte('\n')
	}

	subject := fit(termtext.Sanitize(result.Current.Subject, tabWidth), opts.Width, text)
	if opts.Color {
		subject = ansiBold + subject + ansiReset
	}
	b.WriteString(subject)
	b.WriteByte('\n')

	stats := result.Diff.Stats()
	meta := fmt.Sprintf("%s  %s  +%d -%d", result.Transition(), result.FormattedDate, stats.Inserted, stats.Deleted)
	meta = fit(meta, opts.Width, text)
	if opts.Color {
		meta = ansiDim + meta + ansiReset
	}
	b.WriteString(meta)
	b.WriteByte('\n')

	rows := NumberedRows(result.Diff, opts.Width, opts.Color, text)
	if len(rows) > 0 {
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// NumberedRows returns d.RenderNumbered as individual rows, with control characters escaped, each row fit to width cells (0 = unlimited), and colored if
// color.
func NumberedRows(d diff.Diff, width int, color bool, text *termtext.Options) []string {
	if len(d.Ops) == 0 {
		return nil
	}

	sanitized := d
	sanitized.Ops = make([]diff.EditOp, len(d.Ops))
	for i, op := range d.Ops {
		op.Text = termtext.Sanitize(op.Text, tabWidth)
		sanitized.Ops[i] = op
	}

	// Op text never contains a newline, so rows and ops line up.
	rows := strings.Split(sanitized.RenderNumbered(false), "\n")
	for i, row := range rows {
		row = fit(row, width, text)
		if color {
			switch d.Ops[i].Op {
			case diff.OpDelete:
				row = ansiRed + row + ansiReset
			case diff.OpInsert:
				row = ansiGreen + row + ansiReset
			}
		}
		rows[i] = row
	}
	return rows
}

// MarkerStrip draws one marker per revision, oldest first, the active one filled. If the strip is wider than width (0 = unlimited), it shows a window
// around the active marker with ellipses for the hidden ends.
func MarkerStrip(markers []timeline.Marker, width int, text *termtext.Options) string {
	symbols := make([]string, len(markers))
	active := 0
	for i, m := range markers {
		symbols[i] = MarkerInactive
		if m.Active {
			symbols[i] = MarkerActive
			active = i
		}
	}

	full := strings.Join(symbols, " ")
	if width <= 0 || termtext.Width(full, text) <= width {
		return full
	}

	// Each marker takes its width plus a separator; reserve the same for "… " on each side.
	cell := termtext.Width(MarkerActive, text) + 1
	edge := termtext.Width(ellipsis, text) + 1
	n := max((width-2*edge+1)/cell, 1)
	start := min(max(active-n/2, 0), len(symbols)-n)
	end := start + n

	var parts []string
	if start > 0 {
		parts = append(parts, ellipsis)
	}
	parts = append(parts, symbols[start:end]...)
	if end < len(symbols) {
		parts = append(parts, ellipsis)
	}
	return strings.Join(parts, " ")
}

func fit(s string, width int, text *termtext.Options) string {
	if width <= 0 {
		return s
	}
	return termtext.Truncate(s, width, ellipsis, text)
}
