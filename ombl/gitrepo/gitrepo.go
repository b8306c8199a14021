// Package gitrepo implements ombl.Backend on top of the git CLI.
package gitrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/airRnot1106/git-ombl/ombl"
	"github.com/airRnot1106/git-ombl/ombl/commitlog"
	"github.com/airRnot1106/git-ombl/ombl/gitexec"
)

// Repo is a handle on one repository checkout. It holds no open resources
// and is safe for concurrent queries.
type Repo struct {
	dir        string
	gitCommand string
}

// Open validates that dir is inside a git repository and returns a handle.
func Open(ctx context.Context, dir string) (*Repo, error) {
	r := &Repo{dir: dir, gitCommand: "git"}
	if _, err := gitexec.Exec(ctx, r.gitCommand, dir, []string{"rev-parse", "--git-dir"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ombl.ErrRepositoryNotFound, dir)
	}
	return r, nil
}

// Head resolves the commit HEAD points at.
func (r *Repo) Head(ctx context.Context) (ombl.Commit, error) {
	out, err := gitexec.Exec(ctx, r.gitCommand, r.dir, []string{"rev-parse", "HEAD"})
	if err != nil {
		return ombl.Commit{}, fmt.Errorf("%w: %v", ombl.ErrRepositoryEmpty, r.dir)
	}
	sha := strings.TrimSpace(string(out))
	if len(sha) < 40 {
		return ombl.Commit{}, fmt.Errorf("%w: unexpected head sha %q", ombl.ErrBackendIO, sha)
	}
	p := commitlog.New(r.dir, commitlog.Opts{FromSHA: sha, MaxCount: 1})
	commits, err := p.RunSlice(ctx)
	if err != nil {
		return ombl.Commit{}, fmt.Errorf("%w: %v", ombl.ErrBackendIO, err)
	}
	if len(commits) == 0 {
		return ombl.Commit{}, fmt.Errorf("%w: %v", ombl.ErrRepositoryEmpty, r.dir)
	}
	return commits[0], nil
}

// Commits streams every commit reachable from HEAD, newest first. git log
// already deduplicates commits reachable through multiple ancestry paths.
func (r *Repo) Commits(ctx context.Context, out chan<- ombl.Commit) error {
	return commitlog.New(r.dir, commitlog.Opts{}).Run(ctx, out)
}

// PathExists reports whether path is in the tree of the given commit.
func (r *Repo) PathExists(ctx context.Context, sha, path string) (bool, error) {
	out, err := gitexec.Exec(ctx, r.gitCommand, r.dir, []string{"ls-tree", "--name-only", sha, "--", path})
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(string(out))) != 0, nil
}
