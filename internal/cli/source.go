package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centuriae/revtrail/internal/history"
	"github.com/centuriae/revtrail/internal/timeline"
)

// source selects where a command reads revisions from: the git history of FILE in --repo, or a --history file.
type source struct {
	repo        string
	historyFile string
	limit       int
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.repo, "repo", ".", "git repository containing FILE")
	cmd.Flags().StringVar(&s.historyFile, "history", "", "read revisions from a JSON or YAML history file instead of git")
	cmd.Flags().IntVar(&s.limit, "limit", 0, "read at most this many of the newest git revisions (0 = all)")
}

// args validates positional arguments: exactly one FILE for git, none with --history.
func (s *source) args(cmd *cobra.Command, args []string) error {
	if s.historyFile != "" {
		if len(args) > 0 {
			return usageErrorf("FILE cannot be combined with --history")
		}
		if cmd.Flags().Changed("repo") {
			return usageErrorf("--repo cannot be combined with --history")
		}
		return nil
	}
	switch len(args) {
	case 0:
		return usageErrorf("missing FILE (or use --history)")
	case 1:
		if s.limit < 0 {
			return usageErrorf("--limit must be >= 0")
		}
		return nil
	default:
		return usageErrorf("expected one FILE, got %d arguments", len(args))
	}
}

// load returns the revisions newest-first and a label for them.
func (s *source) load(args []string) ([]timeline.Revision, string, error) {
	if s.historyFile != "" {
		revs, err := history.ReadFile(s.historyFile)
		if err != nil {
			return nil, "", err
		}
		return revs, historyLabel(s.historyFile), nil
	}

	file := args[0]
	revs, err := history.FromGit(s.repo, file, history.GitOptions{Limit: s.limit})
	if err != nil {
		return nil, "", err
	}
	return revs, filepath.Base(file), nil
}

// historyLabel names the content tracked by a history file: "post.md.history.json" -> "post.md", otherwise the file's base name.
func historyLabel(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".history.json", ".history.yaml", ".history.yml"} {
		if name, ok := strings.CutSuffix(base, suffix); ok && name != "" {
			return name
		}
	}
	return base
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown":
		return true
	}
	return false
}
