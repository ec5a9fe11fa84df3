package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/centuriae/revtrail/internal/config"
	"github.com/centuriae/revtrail/internal/logging"
	"github.com/centuriae/revtrail/internal/view"
)

// app is the state shared by all commands of one Run.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg      *config.Config
	log      *zap.SugaredLogger
	closeLog func()

	configFile string
	logFile    string
	color      string
	width      int
}

// setup loads configuration and starts logging. overrides are flag values that take precedence over config and env.
func (a *app) setup(overrides map[string]any) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, a.closeLog = logging.New(cfg.Log.File, cfg.Log.Level)
	a.log.Debugw("configuration loaded", "color", cfg.Color, "format", cfg.Format, "context", cfg.Context, "width", cfg.Width)
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

func (a *app) logger() *zap.SugaredLogger {
	if a.log == nil {
		a.log = zap.NewNop().Sugar()
	}
	return a.log
}

// outFd returns the file descriptor of a.out, if it is a file.
func (a *app) outFd() (uintptr, bool) {
	f, ok := a.out.(*os.File)
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}

func (a *app) useColor() bool {
	if fd, ok := a.outFd(); ok {
		return a.cfg.UseColor(fd)
	}
	return a.cfg.Color == config.ColorAlways
}

func (a *app) outputWidth() int {
	if fd, ok := a.outFd(); ok {
		return a.cfg.OutputWidth(fd)
	}
	if a.cfg.Width > 0 {
		return a.cfg.Width
	}
	return config.FallbackWidth
}

func (a *app) viewOptions(title string) view.Options {
	return view.Options{
		Color:   a.useColor(),
		Width:   a.outputWidth(),
		Context: a.cfg.Context,
		Title:   title,
		Preview: isMarkdown(title),

		EastAsianWidth: a.cfg.EastAsianWidth,
	}
}
