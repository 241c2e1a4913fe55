package git

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository in a temp dir with a single commit.
func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func resolved(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func TestRepositoryRoot_FromSubdirectory(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "internal", "build")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepositoryRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, dir), resolved(t, root))
}

func TestIsRepository(t *testing.T) {
	tests := map[string]struct {
		setup func(t *testing.T) string
		want  bool
	}{
		"repository": {
			setup: initRepo,
			want:  true,
		},
		"plain directory": {
			setup: func(t *testing.T) string { return t.TempDir() },
			want:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRepository(tt.setup(t)))
		})
	}
}

func TestRepositoryRoot_NotRepository(t *testing.T) {
	_, err := RepositoryRoot(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, git.ErrRepositoryNotExists))
}

func TestCreateTag(t *testing.T) {
	dir := initRepo(t)

	exists, err := TagExists(dir, "v1.2.0")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, CreateTag(dir, "v1.2.0", "Release 1.2.0"))

	exists, err = TagExists(dir, "v1.2.0")
	require.NoError(t, err)
	assert.True(t, exists)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	ref, err := repo.Tag("v1.2.0")
	require.NoError(t, err)
	tag, err := repo.TagObject(ref.Hash())
	require.NoError(t, err, "tag should be annotated")
	assert.Equal(t, "Release 1.2.0", strings.TrimSpace(tag.Message))
	assert.NotEmpty(t, tag.Tagger.Name)
}

func TestCommitFiles(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("# demo 1.0.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("untouched\n"), 0o644))

	hash, err := CommitFiles(dir, []string{
		filepath.Join(dir, "README.md"),
		"CHANGELOG.md",
		filepath.Join(dir, "RELEASE.md"),
	}, "Release demo 1.0.0")
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Release demo 1.0.0", commit.Message)

	file, err := commit.File("README.md")
	require.NoError(t, err)
	content, err := file.Contents()
	require.NoError(t, err)
	assert.Equal(t, "changed\n", content)

	_, err = commit.File("CHANGELOG.md")
	assert.NoError(t, err)
	_, err = commit.File("scratch.txt")
	assert.Error(t, err, "unlisted files stay uncommitted")
}

func TestCommitFiles_StagesRemoval(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "README.md")))

	_, err := CommitFiles(dir, []string{filepath.Join(dir, "README.md")}, "remove readme")
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	assert.True(t, status.IsClean())

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	_, err = commit.File("README.md")
	assert.Error(t, err)
}

func TestCommitFiles_OutsideRepository(t *testing.T) {
	dir := initRepo(t)

	_, err := CommitFiles(dir, []string{filepath.Join(t.TempDir(), "other.txt")}, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the repository")
}

func TestCreateTag_Duplicate(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, CreateTag(dir, "v1.0.0", "first"))

	err := CreateTag(dir, "v1.0.0", "again")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestCreateTag_NoCommits(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	err = CreateTag(dir, "v1.0.0", "release")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting HEAD reference")
}

func TestSetDebugLogger(t *testing.T) {
	var messages []string
	SetDebugLogger(func(format string, args ...any) {
		messages = append(messages, format)
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	IsRepository(t.TempDir())
	assert.NotEmpty(t, messages)
}
