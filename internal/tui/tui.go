// Package tui is the interactive timeline viewer: a marker strip and revision header above a scrollable numbered diff.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/centuriae/revtrail/internal/diff"
	"github.com/centuriae/revtrail/internal/termtext"
	"github.com/centuriae/revtrail/internal/timeline"
	"github.com/centuriae/revtrail/internal/view"
)

const headerHeight = 4 // strip, subject, meta, blank

// Options configure Run.
type Options struct {
	Log    *zap.SugaredLogger // nil = no logging
	Input  io.Reader          // nil = stdin
	Output io.Writer          // nil = stdout
	Text   *termtext.Options  // cell widths for fitting the header and diff; nil = non-East Asian
}

// Run shows ctrl interactively until the user quits. Navigation moves ctrl's position.
func Run(ctrl *timeline.Controller, opts Options) error {
	m, err := newModel(ctrl, opts.Log, opts.Text)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	_, err = tea.NewProgram(m, progOpts...).Run()
	return err
}

type model struct {
	ctrl   *timeline.Controller
	result timeline.RenderResult
	log    *zap.SugaredLogger
	text   *termtext.Options

	keys     keyMap
	help     help.Model
	styles   styles
	viewport viewport.Model

	ready  bool
	width  int
	height int
}

func newModel(ctrl *timeline.Controller, log *zap.SugaredLogger, text *termtext.Options) (*model, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	res, err := ctrl.Current()
	if err != nil {
		return nil, err
	}
	return &model{
		ctrl:   ctrl,
		result: res,
		log:    log,
		text:   text,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: defaultStyles(),
	}, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.viewportHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.viewportHeight()
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			if m.ready {
				m.viewport.Height = m.viewportHeight()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectIndex(m.result.Position - 1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.selectIndex(m.result.Position + 1)
			return m, nil
		case key.Matches(msg, m.keys.First):
			m.selectIndex(0)
			return m, nil
		case key.Matches(msg, m.keys.Last):
			m.selectIndex(m.ctrl.Len() - 1)
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectIndex moves the timeline to index. Out-of-range indexes (ex: "older" at the first revision) are ignored.
func (m *model) selectIndex(index int) {
	if index == m.result.Position {
		return
	}
	res, err := m.ctrl.Select(index)
	if err != nil {
		m.log.Debugw("ignored navigation", "index", index, "error", err)
		return
	}
	m.result = res
	m.log.Debugw("selected revision", "position", res.Position, "id", res.Current.ID)
	m.refreshViewport()
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.diffContent())
	m.viewport.GotoTop()
}

func (m *model) diffContent() string {
	d := m.result.Diff
	if len(d.Ops) == 0 {
		return m.styles.meta.Render("(empty)")
	}

	rows := view.NumberedRows(d, m.width, false, m.text)
	for i, row := range rows {
		switch d.Ops[i].Op {
		case diff.OpInsert:
			rows[i] = m.styles.inserted.Render(row)
		case diff.OpDelete:
			rows[i] = m.styles.deleted.Render(row)
		}
	}
	return strings.Join(rows, "\n")
}

func (m *model) viewportHeight() int {
	return max(m.height-headerHeight-lipgloss.Height(m.help.View(m.keys)), 1)
}

func (m *model) View() string {
	if !m.ready {
		return "loading…"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.help.View(m.keys))
}

func (m *model) header() string {
	res := m.result
	stats := res.Diff.Stats()

	strip := view.MarkerStrip(m.ctrl.Markers(), m.width, m.text)
	subject := termtext.Truncate(termtext.Sanitize(res.Current.Subject, 4), m.width, "…", m.text)
	meta := fmt.Sprintf("%s  %s  +%d -%d  (%d/%d)", res.Transition(), res.FormattedDate, stats.Inserted, stats.Deleted, res.Position+1, m.ctrl.Len())
	meta = termtext.Truncate(meta, m.width, "…", m.text)

	return strings.Join([]string{
		m.styles.strip.Render(strip),
		m.styles.subject.Render(subject),
		m.styles.meta.Render(meta),
		"",
	}, "\n")
}
