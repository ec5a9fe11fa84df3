package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/centuriae/revtrail/internal/diff"
	"github.com/centuriae/revtrail/internal/timeline"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type htmlMarker struct {
	Symbol string
	Title  string
	Link   string
	Active bool
}

type htmlRow struct {
	Class   string
	OldLine string
	NewLine string
	Text    string
}

type htmlPage struct {
	Title      string
	Markers    []htmlMarker
	Subject    string
	ShortID    string
	Transition string
	Date       string
	Inserted   int
	Deleted    int
	Rows       []htmlRow
	Preview    template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}} · {{end}}{{.ShortID}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2em auto; max-width: 60em; color: #222; }
.timeline { display: flex; gap: .4em; font-size: 1.2em; margin-bottom: 1em; }
.timeline a, .timeline span { text-decoration: none; color: #999; }
.timeline .active { color: #222; }
.meta { color: #666; font-family: ui-monospace, monospace; }
table.diff { border-collapse: collapse; width: 100%; font-family: ui-monospace, monospace; font-size: .9em; }
table.diff td { padding: 0 .5em; white-space: pre-wrap; vertical-align: top; }
table.diff td.ln { color: #999; text-align: right; user-select: none; width: 1%; }
tr.ins { background: #e6ffec; }
tr.del { background: #ffebe9; }
.preview { border-top: 1px solid #ddd; margin-top: 2em; padding-top: 1em; }
</style>
</head>
<body>
<nav class="timeline">
{{- range .Markers}}
{{if .Link}}<a href="{{.Link}}" title="{{.Title}}"{{if .Active}} class="active"{{end}}>{{.Symbol}}</a>{{else}}<span title="{{.Title}}"{{if .Active}} class="active"{{end}}>{{.Symbol}}</span>{{end}}
{{- end}}
</nav>
<h1>{{.Subject}}</h1>
<p class="meta"><span>{{.Transition}}</span> · <time>{{.Date}}</time> · +{{.Inserted}} -{{.Deleted}}</p>
<table class="diff">
{{- range .Rows}}
<tr{{if .Class}} class="{{.Class}}"{{end}}><td class="ln">{{.OldLine}}</td><td class="ln">{{.NewLine}}</td><td>{{if eq .Class "ins"}}+{{else if eq .Class "del"}}-{{end}}</td><td>{{.Text}}</td></tr>
{{- end}}
</table>
{{- if .Preview}}
<section class="preview">
{{.Preview}}
</section>
{{- end}}
</body>
</html>
`))

// HTML writes a standalone HTML page for result. Revision text is escaped by html/template. If opts.Preview, the current content is also rendered as
// Markdown (raw HTML in the content is not passed through).
func HTML(w io.Writer, result timeline.RenderResult, markers []timeline.Marker, opts Options) error {
	page := htmlPage{
		Title:      opts.Title,
		Subject:    result.Current.Subject,
		ShortID:    timeline.ShortID(result.Current.ID),
		Transition: result.Transition(),
		Date:       result.FormattedDate,
	}

	for _, m := range markers {
		hm := htmlMarker{Symbol: MarkerInactive, Title: m.Subject, Active: m.Active}
		if m.Active {
			hm.Symbol = MarkerActive
		}
		if opts.PageLink != nil {
			hm.Link = opts.PageLink(m.ID)
		}
		page.Markers = append(page.Markers, hm)
	}

	stats := result.Diff.Stats()
	page.Inserted, page.Deleted = stats.Inserted, stats.Deleted

	for _, op := range result.Diff.Ops {
		row := htmlRow{OldLine: lineNumber(op.OldLine), NewLine: lineNumber(op.NewLine), Text: op.Text}
		switch op.Op {
		case diff.OpInsert:
			row.Class = "ins"
		case diff.OpDelete:
			row.Class = "del"
		}
		page.Rows = append(page.Rows, row)
	}

	if opts.Preview {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(result.Current.Content), &buf); err != nil {
			return fmt.Errorf("view: render preview: %w", err)
		}
		page.Preview = template.HTML(buf.String())
	}

	return pageTemplate.Execute(w, page)
}

func lineNumber(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}
