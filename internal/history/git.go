package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/centuriae/revtrail/internal/timeline"
)

var (
	ErrNotRepository = errors.New("history: not a git repository")
	ErrNoHistory     = errors.New("history: file has no committed revisions")
	ErrOutsideRepo   = errors.New("history: file is outside the repository")
)

// GitOptions configures FromGit.
type GitOptions struct {
	// Limit is the maximum number of revisions to return (0 = unlimited). The newest revisions are kept.
	Limit int
}

// FromGit returns every committed version of filePath in the repository containing repoPath, newest-first by committer time.
//
// A relative filePath is resolved against repoPath. Only commits that change the file are returned; commits in which it does not exist (for example, the
// commit that deleted it) are skipped. Renames are followed: once the walk reaches the commit that renamed the file, older commits are read at the previous
// path.
//
// Each revision has the full commit hash as ID, the first line of the commit message as Subject, and the author time (RFC3339) as Timestamp.
func FromGit(repoPath, filePath string, opts GitOptions) ([]timeline.Revision, error) {
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, repoPath)
		}
		return nil, fmt.Errorf("history: open repository: %w", err)
	}

	rel, err := repoRelativePath(repo, repoPath, filePath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoHistory, rel)
		}
		return nil, fmt.Errorf("history: resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{
		From:  head.Hash(),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("history: log %s: %w", rel, err)
	}
	defer iter.Close()

	ctx := context.Background()
	path := rel
	var revs []timeline.Revision
	err = iter.ForEach(func(commit *object.Commit) error {
		if opts.Limit > 0 && len(revs) >= opts.Limit {
			return storer.ErrStop
		}

		file, err := commit.File(path)
		if err != nil {
			if errors.Is(err, object.ErrFileNotFound) {
				return nil
			}
			return err
		}
		changed, from, err := fileChange(ctx, commit, path, file.Hash)
		if err != nil || !changed {
			return err
		}
		content, err := file.Contents()
		if err != nil {
			return err
		}
		if from != "" {
			path = from
		}

		revs = append(revs, timeline.Revision{
			ID:        commit.Hash.String(),
			Content:   content,
			Subject:   extractSubject(commit.Message),
			Timestamp: commit.Author.When.Format(time.RFC3339),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("history: walk %s: %w", rel, err)
	}

	if len(revs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, rel)
	}
	return revs, nil
}

// fileChange reports whether the blob at path in commit differs from the blob at path in every parent. If the file is absent from the first parent, from
// is the path it was renamed from there, or "" if it was added.
func fileChange(ctx context.Context, commit *object.Commit, path string, blob plumbing.Hash) (changed bool, from string, err error) {
	if commit.NumParents() == 0 {
		return true, "", nil
	}

	inFirst := false
	for i := range commit.NumParents() {
		parent, err := commit.Parent(i)
		if err != nil {
			return false, "", err
		}
		f, err := parent.File(path)
		if errors.Is(err, object.ErrFileNotFound) {
			continue
		}
		if err != nil {
			return false, "", err
		}
		if f.Hash == blob {
			return false, "", nil
		}
		if i == 0 {
			inFirst = true
		}
	}
	if inFirst {
		return true, "", nil
	}

	first, err := commit.Parent(0)
	if err != nil {
		return false, "", err
	}
	from, err = renamedFrom(ctx, first, commit, path)
	return true, from, err
}

// renamedFrom returns the path in parent that commit renamed to path, using go-git's rename detection. It returns "" if path was not a rename target.
func renamedFrom(ctx context.Context, parent, commit *object.Commit, path string) (string, error) {
	fromTree, err := parent.Tree()
	if err != nil {
		return "", err
	}
	toTree, err := commit.Tree()
	if err != nil {
		return "", err
	}
	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return "", err
	}
	for _, ch := range changes {
		if ch.To.Name == path && ch.From.Name != "" && ch.From.Name != path {
			return ch.From.Name, nil
		}
	}
	return "", nil
}

// repoRelativePath returns filePath relative to the repository's worktree root, slash-separated.
func repoRelativePath(repo *gogit.Repository, repoPath, filePath string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("history: worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(repoPath, filePath)
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("history: %w", err)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepo, filePath)
	}
	return filepath.ToSlash(rel), nil
}

// extractSubject returns the first line of a commit message.
func extractSubject(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}
