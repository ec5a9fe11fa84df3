package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centuriae/revtrail/internal/config"
	"github.com/centuriae/revtrail/internal/termtext"
	"github.com/centuriae/revtrail/internal/timeline"
	"github.com/centuriae/revtrail/internal/tui"
	"github.com/centuriae/revtrail/internal/view"
)

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "revtrail",
		Short:         "Step through the revision history of a text file",
		Long:          "revtrail shows how a text file changed over time: every committed revision, each compared line by line with the one before it.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("log-file") {
				overrides[config.KeyLogFile] = a.logFile
			}
			if cmd.Flags().Changed("color") {
				overrides[config.KeyColor] = a.color
			}
			if cmd.Flags().Changed("width") {
				overrides[config.KeyWidth] = a.width
			}
			for _, name := range []string{"format", "context"} {
				if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
					overrides[name] = f.Value.String()
				}
			}
			return a.setup(overrides)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: revtrail.yaml in . or ~/.config/revtrail)")
	pf.StringVar(&a.logFile, "log-file", "", "append JSON logs to this file")
	pf.StringVar(&a.color, "color", config.ColorAuto, "colorize output: auto, always, never")
	pf.IntVar(&a.width, "width", 0, "maximum output width (0 = terminal width)")

	root.AddCommand(a.newLogCommand(), a.newShowCommand(), a.newBrowseCommand(), a.newExportCommand())
	return root
}

func (a *app) newLogCommand() *cobra.Command {
	var src source
	var at string

	cmd := &cobra.Command{
		Use:   "log (--repo DIR FILE | --history FILE)",
		Short: "List revisions, oldest first",
		Args:  src.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, label, err := a.openTimeline(src, args, at)
			if err != nil {
				return err
			}
			a.logger().Infow("listing revisions", "source", label, "revisions", ctrl.Len())
			return a.writeLog(ctrl)
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "mark the first revision whose ID starts with this prefix")
	return cmd
}

// writeLog prints one line per revision: a '*' on the current position, index, short ID, date, and subject.
func (a *app) writeLog(ctrl *timeline.Controller) error {
	revs := ctrl.Revisions()
	pos := ctrl.Position()
	indexWidth := len(fmt.Sprint(len(revs) - 1))
	width := a.outputWidth()
	text := a.viewOptions("").TextOptions()

	for i, rev := range revs {
		mark := " "
		if i == pos {
			mark = "*"
		}
		prefix := fmt.Sprintf("%s %*d  %s  %s  ", mark, indexWidth, i, termtext.PadRight(timeline.ShortID(rev.ID), timeline.ShortIDLength, text), timeline.FormatDate(rev.Timestamp))
		subject := termtext.Sanitize(rev.Subject, 4)
		if budget := width - termtext.Width(prefix, text); budget > 0 {
			subject = termtext.Truncate(subject, budget, "…", text)
		}
		if _, err := fmt.Fprintln(a.out, prefix+subject); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newShowCommand() *cobra.Command {
	var src source
	var at string
	var index int
	var format string
	var contextLines int

	cmd := &cobra.Command{
		Use:   "show (--repo DIR FILE | --history FILE) [--at PREFIX | --index N]",
		Short: "Show one revision compared with the revision before it",
		Args:  src.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("at") && cmd.Flags().Changed("index") {
				return usageErrorf("--at and --index are mutually exclusive")
			}

			ctrl, res, label, err := a.openTimeline(src, args, at)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("index") {
				res, err = ctrl.Select(index)
				if err != nil {
					return err
				}
			}

			f, err := view.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}
			a.logger().Infow("showing revision", "source", label, "position", res.Position, "id", res.Current.ID, "format", f)
			return view.Render(a.out, f, res, ctrl.Markers(), a.viewOptions(label))
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "show the first revision whose ID starts with this prefix")
	cmd.Flags().IntVar(&index, "index", 0, "show the revision at this position (0 = oldest)")
	cmd.Flags().StringVar(&format, "format", "numbered", "output format: numbered, unified, pretty, html, dump")
	cmd.Flags().IntVar(&contextLines, "context", 3, "unchanged lines around changes (unified, pretty)")
	return cmd
}

func (a *app) newBrowseCommand() *cobra.Command {
	var src source
	var at string

	cmd := &cobra.Command{
		Use:   "browse (--repo DIR FILE | --history FILE) [--at PREFIX]",
		Short: "Step through revisions interactively",
		Args:  src.args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, label, err := a.openTimeline(src, args, at)
			if err != nil {
				return err
			}
			a.logger().Infow("browsing", "source", label, "revisions", ctrl.Len())
			return tui.Run(ctrl, tui.Options{Log: a.logger(), Input: a.in, Output: a.out, Text: a.viewOptions("").TextOptions()})
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "start at the first revision whose ID starts with this prefix")
	return cmd
}

// openTimeline loads the history named by src and args and positions it at the revision matching at (the newest if at is empty or unmatched). It returns
// the controller, its initial render, and a label naming the tracked content.
func (a *app) openTimeline(src source, args []string, at string) (*timeline.Controller, timeline.RenderResult, string, error) {
	revs, label, err := src.load(args)
	if err != nil {
		return nil, timeline.RenderResult{}, "", err
	}
	a.logger().Debugw("history loaded", "source", label, "revisions", len(revs))

	ctrl, res, err := timeline.New(revs, at)
	if err != nil {
		if errors.Is(err, timeline.ErrEmptyTimeline) {
			return nil, timeline.RenderResult{}, "", fmt.Errorf("%s: %w", label, err)
		}
		return nil, timeline.RenderResult{}, "", err
	}

	if at != "" {
		if _, ok := ctrl.ResolveByPrefix(at); !ok {
			a.logger().Warnw("no revision matches prefix; using newest", "prefix", at, "source", label)
		}
	}
	return ctrl, res, label, nil
}
