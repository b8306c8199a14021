// Package testutil builds throwaway git repositories for tests. Author and
// committer dates are pinned per commit so test assertions on timestamps
// and ordering are exact.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type TestRepo struct {
	t   *testing.T
	Dir string
}

// NewRepo initializes an empty repository in a temp dir.
func NewRepo(t *testing.T) *TestRepo {
	t.Helper()
	s := &TestRepo{t: t, Dir: t.TempDir()}
	s.Git("init", "--initial-branch=main")
	s.Git("config", "user.name", "Test User")
	s.Git("config", "user.email", "test@example.com")
	return s
}

// Git runs a git command in the repo and fails the test on error.
func (s *TestRepo) Git(args ...string) string {
	s.t.Helper()
	return s.gitAt(time.Time{}, args...)
}

// GitAt is Git with pinned author and committer dates, for commands that
// create commits (merge, cherry-pick).
func (s *TestRepo) GitAt(at time.Time, args ...string) string {
	s.t.Helper()
	return s.gitAt(at, args...)
}

func (s *TestRepo) gitAt(at time.Time, args ...string) string {
	s.t.Helper()
	c := exec.Command("git", args...)
	c.Dir = s.Dir
	c.Env = append(os.Environ(),
		"GIT_CONFIG_NOSYSTEM=1",
		"HOME="+s.Dir,
	)
	if !at.IsZero() {
		stamp := at.UTC().Format(time.RFC3339)
		c.Env = append(c.Env,
			"GIT_AUTHOR_DATE="+stamp,
			"GIT_COMMITTER_DATE="+stamp,
		)
	}
	out, err := c.CombinedOutput()
	if err != nil {
		s.t.Fatalf("git %v failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes content at a repo-relative path.
func (s *TestRepo) WriteFile(path, content string) {
	s.t.Helper()
	loc := filepath.Join(s.Dir, path)
	if err := os.MkdirAll(filepath.Dir(loc), 0777); err != nil {
		s.t.Fatal(err)
	}
	if err := os.WriteFile(loc, []byte(content), 0666); err != nil {
		s.t.Fatal(err)
	}
}

// Commit stages everything and commits with a pinned date, returning the
// commit sha.
func (s *TestRepo) Commit(message string, at time.Time) string {
	s.t.Helper()
	s.Git("add", "-A")
	s.gitAt(at, "commit", "--allow-empty", "-m", message)
	return s.Git("rev-parse", "HEAD")
}

// CommitFile writes one file and commits it.
func (s *TestRepo) CommitFile(path, content, message string, at time.Time) string {
	s.t.Helper()
	s.WriteFile(path, content)
	return s.Commit(message, at)
}
