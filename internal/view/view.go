package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/centuriae/revtrail/internal/termtext"
	"github.com/centuriae/revtrail/internal/timeline"
)

// Format selects a renderer.
type Format string

const (
	FormatNumbered Format = "numbered"
	FormatUnified  Format = "unified"
	FormatPretty   Format = "pretty"
	FormatHTML     Format = "html"
	FormatDump     Format = "dump"
)

// Formats lists every Format, in the order shown in help text.
var Formats = []Format{FormatNumbered, FormatUnified, FormatPretty, FormatHTML, FormatDump}

// ParseFormat returns the Format named s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("view: unknown format %q", s)
}

// Options configure rendering. The zero value renders uncolored text of unlimited width with no diff context.
type Options struct {
	Color   bool // emit ANSI colors (Text, Unified; Pretty is always colored)
	Width   int  // maximum row width in cells for Text; 0 = unlimited
	Context int  // unchanged lines around changes for Unified and Pretty

	// EastAsianWidth counts ambiguous-width runes (markers, ellipses) as two cells when fitting Text output to Width.
	EastAsianWidth bool

	Title   string // document title for HTML; typically the tracked file name
	Preview bool   // HTML: include the current content rendered as Markdown

	// PageLink, if set, returns the URL of the HTML page for a revision ID. HTML markers become links.
	PageLink func(id string) string
}

// TextOptions returns the termtext width options matching o.
func (o Options) TextOptions() *termtext.Options {
	if !o.EastAsianWidth {
		return nil
	}
	return &termtext.Options{EastAsianWidth: true}
}

// Render writes result in format f.
func Render(w io.Writer, f Format, result timeline.RenderResult, markers []timeline.Marker, opts Options) error {
	switch f {
	case FormatNumbered:
		return Text(w, result, markers, opts)
	case FormatUnified:
		return Unified(w, result, opts)
	case FormatPretty:
		return Pretty(w, result, opts)
	case FormatHTML:
		return HTML(w, result, markers, opts)
	case FormatDump:
		return Dump(w, result)
	default:
		return fmt.Errorf("view: unknown format %q", f)
	}
}

// Unified writes a unified diff of result labeled with short revision IDs.
func Unified(w io.Writer, result timeline.RenderResult, opts Options) error {
	out := result.Diff.RenderUnifiedDiff(opts.Color, timeline.ShortID(result.Previous.ID), timeline.ShortID(result.Current.ID), opts.Context)
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Pretty writes a colored diff with a "<prev> -> <cur>:" header.
func Pretty(w io.Writer, result timeline.RenderResult, opts Options) error {
	out := result.Diff.RenderPretty(timeline.ShortID(result.Previous.ID), timeline.ShortID(result.Current.ID), opts.Context)
	_, err := io.WriteString(w, out+"\n")
	return err
}
