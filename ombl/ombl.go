// Package ombl traces the complete edit history of one line in a
// git-tracked file: every commit that touched the file, who made it, when,
// with what message, and whether it created or modified the file.
//
// Relevance is decided per file, not per line: any commit that changed the
// file is reported, whether or not it altered the target line's content.
// True per-line attribution would need hunk-level diffing across renames and
// is deliberately not attempted.
package ombl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/airRnot1106/git-ombl/ombl/pkg/logger"
)

// SortOrder controls the chronological direction of the result.
type SortOrder string

const (
	// SortAscending orders events oldest first.
	SortAscending = SortOrder("asc")
	// SortDescending orders events newest first.
	SortDescending = SortOrder("desc")
)

// Backend is the read-only query surface the tracer needs from a
// version-control repository. Implementations must yield commits newest
// first and deduplicated by SHA (a commit reachable through multiple
// ancestry paths past a merge is yielded exactly once).
type Backend interface {
	// Head returns the commit the repository head points at.
	// Returns an error wrapping ErrRepositoryEmpty when there is no
	// reachable history.
	Head(ctx context.Context) (Commit, error)

	// Commits streams commits reachable from head into out, newest first,
	// and closes out when done or on error.
	Commits(ctx context.Context, out chan<- Commit) error

	// PathExists reports whether path is present in the tree of the commit
	// identified by sha.
	PathExists(ctx context.Context, sha, path string) (bool, error)
}

// Query describes one line-history request.
type Query struct {
	// FilePath is the repository-relative path of the file.
	FilePath string
	// LineNumber is the 1-based target line.
	LineNumber int
	Sort       SortOrder
	// IgnoreRevs drops commits whose SHA equals or is prefixed by any
	// entry. Full and abbreviated hashes both work. An entry matching no
	// commit is a no-op.
	IgnoreRevs []string
	// Since and Until bound the authoring instant, inclusive, compared as
	// UTC instants. A nil bound is unconstrained on that side.
	Since *time.Time
	Until *time.Time
}

// Opts is the tracer configuration.
type Opts struct {
	// Limit bounds traversal depth: at most Limit commits are examined
	// from the walk. Zero means unbounded. Note that a limit can cut off
	// the true creation commit; the earliest surviving event is still
	// tagged Created.
	Limit int

	Logger logger.Logger
}

// Tracer runs line-history queries against an injected backend. Each call
// is a pure function of the repository state and the query; no state is
// shared across calls, so one Tracer may serve concurrent queries.
type Tracer struct {
	backend Backend
	opts    Opts
}

// New returns a Tracer reading from backend.
func New(backend Backend, opts Opts) *Tracer {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Tracer{backend: backend, opts: opts}
}

// Trace walks the commit stream, filters and classifies the commits
// relevant to q.FilePath and returns them in the requested order.
func (t *Tracer) Trace(ctx context.Context, q Query) (*LineHistory, error) {
	if q.FilePath == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrInvalidQuery)
	}
	if q.LineNumber < 1 {
		return nil, fmt.Errorf("%w: line number must be >= 1, got %v", ErrInvalidQuery, q.LineNumber)
	}

	head, err := t.backend.Head(ctx)
	if err != nil {
		return nil, err
	}

	events, err := t.collect(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		exists, err := t.backend.PathExists(ctx, head.SHA, q.FilePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendIO, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %v", ErrFileNotFound, q.FilePath)
		}
	}

	sortEvents(events, q.Sort)

	return &LineHistory{
		FilePath:   q.FilePath,
		LineNumber: q.LineNumber,
		Events:     events,
	}, nil
}

// collect streams commits from the backend and keeps the relevant ones in
// traversal (newest-first) order. Classification is not decided here, only
// after the final sort.
func (t *Tracer) collect(ctx context.Context, q Query) ([]LineEvent, error) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commits := make(chan Commit)
	errc := make(chan error, 1)
	go func() {
		errc <- t.backend.Commits(cctx, commits)
	}()

	var events []LineEvent
	seen := map[string]bool{}
	var walked int
	var limited bool
	for c := range commits {
		if limited {
			// keep draining so the producer can finish
			continue
		}
		if seen[c.SHA] {
			continue
		}
		seen[c.SHA] = true
		walked++
		if t.relevant(c, q) {
			events = append(events, LineEvent{
				SHA:       c.SHA,
				Author:    c.Author(),
				Timestamp: c.Date.UTC(),
				Message:   c.Message,
			})
		}
		if t.opts.Limit > 0 && walked >= t.opts.Limit {
			limited = true
			cancel()
		}
	}
	if err := <-errc; err != nil && cctx.Err() == nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendIO, err)
	}
	t.opts.Logger.Debug("walk finished", "examined", walked, "relevant", len(events), "limited", limited)
	return events, nil
}

// relevant applies the ignore filter, the date filter and the file-level
// relevance test. A dropped commit is excluded entirely, not merely hidden.
func (t *Tracer) relevant(c Commit, q Query) bool {
	for _, rev := range q.IgnoreRevs {
		if rev == "" {
			continue
		}
		if strings.HasPrefix(c.SHA, rev) {
			return false
		}
	}
	ts := c.Date.UTC()
	if q.Since != nil && ts.Before(q.Since.UTC()) {
		return false
	}
	if q.Until != nil && ts.After(q.Until.UTC()) {
		return false
	}
	fc, touched := c.Touches(q.FilePath)
	if !touched {
		return false
	}
	// a removal means the path is gone from this commit's tree
	return fc.Status != FileStatusRemoved
}

// sortEvents orders events chronologically and tags the earliest surviving
// event Created. The descending result is the exact reverse of the
// ascending one, so the same physical commit carries the Created tag under
// both orders. The stable sort keeps traversal order as the tie-break for
// identical timestamps.
func sortEvents(events []LineEvent, order SortOrder) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	for i := range events {
		if i == 0 {
			events[i].Type = ChangeTypeCreated
		} else {
			events[i].Type = ChangeTypeModified
		}
	}
	if order == SortDescending {
		for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
			events[i], events[j] = events[j], events[i]
		}
	}
}
