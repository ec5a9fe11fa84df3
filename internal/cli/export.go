package cli

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centuriae/revtrail/internal/history"
	"github.com/centuriae/revtrail/internal/timeline"
	"github.com/centuriae/revtrail/internal/view"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.}}">
<title>revtrail</title>
</head>
<body><a href="{{.}}">Latest revision</a></body>
</html>
`))

func (a *app) newExportCommand() *cobra.Command {
	var src source
	var outDir string

	cmd := &cobra.Command{
		Use:   "export (--repo DIR FILE | --history FILE) --out DIR",
		Short: "Write a static HTML page per revision",
		Args:  src.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return usageErrorf("--out is required")
			}
			ctrl, _, label, err := a.openTimeline(src, args, "")
			if err != nil {
				return err
			}
			n, err := a.export(ctrl, label, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %d pages to %s\n", n, outDir)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	return cmd
}

// export writes <page>.html for every revision, index.html redirecting to the newest page, and history.json. It returns the number of revision pages.
func (a *app) export(ctrl *timeline.Controller, label, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	revs := ctrl.Revisions()
	pages := pageNames(revs)

	opts := a.viewOptions(label)
	opts.Color = false
	opts.PageLink = func(id string) string { return pages[id] }

	for i := range revs {
		res, err := ctrl.Select(i)
		if err != nil {
			return 0, err
		}
		if err := writeFile(filepath.Join(outDir, pages[res.Current.ID]), func(f *os.File) error {
			return view.HTML(f, res, ctrl.Markers(), opts)
		}); err != nil {
			return 0, err
		}
		a.logger().Debugw("exported revision", "id", res.Current.ID, "page", pages[res.Current.ID])
	}

	newest := pages[revs[len(revs)-1].ID]
	if err := writeFile(filepath.Join(outDir, "index.html"), func(f *os.File) error {
		return indexTemplate.Execute(f, newest)
	}); err != nil {
		return 0, err
	}

	newestFirst := slices.Clone(revs)
	slices.Reverse(newestFirst)
	if err := writeFile(filepath.Join(outDir, "history.json"), func(f *os.File) error {
		return history.Encode(f, newestFirst, label)
	}); err != nil {
		return 0, err
	}

	a.logger().Infow("export finished", "dir", outDir, "pages", len(revs))
	return len(revs), nil
}

// pageNames maps each revision ID to its page file name: the short ID, or the full ID where short IDs collide. IDs that are not safe file names, that
// would shadow index.html, or that clash with an earlier page (ignoring case) get "rev-<n>.html", where n is the revision's position.
func pageNames(revs []timeline.Revision) map[string]string {
	counts := make(map[string]int, len(revs))
	for _, rev := range revs {
		counts[timeline.ShortID(rev.ID)]++
	}

	used := make(map[string]bool, len(revs))
	names := make(map[string]string, len(revs))
	for i, rev := range revs {
		name := timeline.ShortID(rev.ID)
		if counts[name] > 1 {
			name = rev.ID
		}
		if !safePageName(name) || used[strings.ToLower(name)] {
			name = fmt.Sprintf("rev-%d", i)
			for used[name] {
				name += "_"
			}
		}
		used[strings.ToLower(name)] = true
		names[rev.ID] = name + ".html"
	}
	return names
}

// safePageName reports whether name can be used as a file name inside the export directory.
func safePageName(name string) bool {
	if name == "" || name[0] == '.' || strings.EqualFold(name, "index") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("export: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
