package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitStep moves files (old name to new name), then writes files (a nil value removes the file), and commits.
type commitStep struct {
	moves   map[string]string
	files   map[string]*string
	message string
	when    time.Time
}

func strPtr(s string) *string { return &s }

// testRepo creates a repository in a temp dir and applies steps in order. It returns the dir and the commit hashes, oldest first.
func testRepo(t *testing.T, steps []commitStep) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	var hashes []string
	for _, step := range steps {
		for from, to := range step.moves {
			_, err := wt.Move(from, to)
			require.NoError(t, err)
		}
		for name, content := range step.files {
			path := filepath.Join(dir, name)
			if content == nil {
				_, err := wt.Remove(name)
				require.NoError(t, err)
				continue
			}
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(*content), 0o644))
			_, err := wt.Add(name)
			require.NoError(t, err)
		}
		hash, err := wt.Commit(step.message, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Author", Email: "author@example.com", When: step.when},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}
	return dir, hashes
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
}

func TestFromGit(t *testing.T) {
	dir, hashes := testRepo(t, []commitStep{
		{files: map[string]*string{"posts/hello.md": strPtr("x\ny\n")}, message: "init\n\nlonger body", when: day(1)},
		{files: map[string]*string{"other.md": strPtr("unrelated\n")}, message: "other file", when: day(2)},
		{files: map[string]*string{"posts/hello.md": strPtr("x\nz\n")}, message: "edit", when: day(3)},
	})

	revs, err := FromGit(dir, "posts/hello.md", GitOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 2)

	assert.Equal(t, hashes[2], revs[0].ID)
	assert.Equal(t, "x\nz\n", revs[0].Content)
	assert.Equal(t, "edit", revs[0].Subject)
	assert.Equal(t, "2024-03-03T10:00:00Z", revs[0].Timestamp)

	assert.Equal(t, hashes[0], revs[1].ID)
	assert.Equal(t, "x\ny\n", revs[1].Content)
	assert.Equal(t, "init", revs[1].Subject)
}

func TestFromGit_AbsolutePathAndLimit(t *testing.T) {
	dir, hashes := testRepo(t, []commitStep{
		{files: map[string]*string{"a.md": strPtr("1\n")}, message: "one", when: day(1)},
		{files: map[string]*string{"a.md": strPtr("2\n")}, message: "two", when: day(2)},
		{files: map[string]*string{"a.md": strPtr("3\n")}, message: "three", when: day(3)},
	})

	revs, err := FromGit(dir, filepath.Join(dir, "a.md"), GitOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, hashes[2], revs[0].ID)
	assert.Equal(t, hashes[1], revs[1].ID)
}

func TestFromGit_SkipsDeletion(t *testing.T) {
	dir, hashes := testRepo(t, []commitStep{
		{files: map[string]*string{"a.md": strPtr("1\n"), "keep.md": strPtr("k\n")}, message: "add", when: day(1)},
		{files: map[string]*string{"a.md": nil}, message: "remove", when: day(2)},
		{files: map[string]*string{"a.md": strPtr("back\n")}, message: "restore", when: day(3)},
	})

	revs, err := FromGit(dir, "a.md", GitOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, hashes[2], revs[0].ID)
	assert.Equal(t, hashes[0], revs[1].ID)
}

func TestFromGit_FollowsRenames(t *testing.T) {
	body := "line one\nline two\nline three\n"
	dir, hashes := testRepo(t, []commitStep{
		{files: map[string]*string{"drafts/post.md": strPtr(body)}, message: "draft", when: day(1)},
		{moves: map[string]string{"drafts/post.md": "posts/post.md"}, message: "publish", when: day(2)},
		{files: map[string]*string{"drafts/post.md": strPtr("new draft\n")}, message: "next draft", when: day(3)},
		{files: map[string]*string{"posts/post.md": strPtr(body + "line four\n")}, message: "extend", when: day(4)},
	})

	revs, err := FromGit(dir, "posts/post.md", GitOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, hashes[3], revs[0].ID)
	assert.Equal(t, "extend", revs[0].Subject)
	assert.Equal(t, hashes[1], revs[1].ID)
	assert.Equal(t, body, revs[1].Content)
	assert.Equal(t, hashes[0], revs[2].ID)
	assert.Equal(t, body, revs[2].Content)

	// The new file at the old path has its own history.
	revs, err = FromGit(dir, "drafts/post.md", GitOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, hashes[2], revs[0].ID)
	assert.Equal(t, hashes[0], revs[1].ID)
}

func TestFromGit_SkipsUnchangedCommits(t *testing.T) {
	dir, hashes := testRepo(t, []commitStep{
		{files: map[string]*string{"a.md": strPtr("1\n")}, message: "one", when: day(1)},
		{files: map[string]*string{"b.md": strPtr("b\n")}, message: "unrelated", when: day(2)},
		{files: map[string]*string{"a.md": strPtr("2\n"), "b.md": strPtr("c\n")}, message: "both", when: day(3)},
	})

	revs, err := FromGit(dir, "a.md", GitOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, hashes[2], revs[0].ID)
	assert.Equal(t, hashes[0], revs[1].ID)
}

func TestFromGit_Errors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := FromGit(t.TempDir(), "a.md", GitOptions{})
		assert.ErrorIs(t, err, ErrNotRepository)
	})

	t.Run("no commits", func(t *testing.T) {
		dir := t.TempDir()
		_, err := gogit.PlainInit(dir, false)
		require.NoError(t, err)

		_, err = FromGit(dir, "a.md", GitOptions{})
		assert.ErrorIs(t, err, ErrNoHistory)
	})

	t.Run("file never committed", func(t *testing.T) {
		dir, _ := testRepo(t, []commitStep{
			{files: map[string]*string{"a.md": strPtr("1\n")}, message: "one", when: day(1)},
		})
		_, err := FromGit(dir, "missing.md", GitOptions{})
		assert.ErrorIs(t, err, ErrNoHistory)
	})

	t.Run("outside repository", func(t *testing.T) {
		dir, _ := testRepo(t, []commitStep{
			{files: map[string]*string{"a.md": strPtr("1\n")}, message: "one", when: day(1)},
		})
		_, err := FromGit(dir, "../elsewhere.md", GitOptions{})
		assert.ErrorIs(t, err, ErrOutsideRepo)
	})
}

func TestExtractSubject(t *testing.T) {
	assert.Equal(t, "fix typo", extractSubject("fix typo\n\nbody"))
	assert.Equal(t, "single", extractSubject("single"))
	assert.Equal(t, "", extractSubject(""))
}
