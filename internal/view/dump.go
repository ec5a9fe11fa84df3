package view

import (
	"io"

	"github.com/sanity-io/litter"

	"github.com/centuriae/revtrail/internal/timeline"
)

var dumper = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: true,
}

// Dump writes a Go-literal dump of result, for debugging.
func Dump(w io.Writer, result timeline.RenderResult) error {
	_, err := io.WriteString(w, dumper.Sdump(result)+"\n")
	return err
}
