// Package commitlog streams the commit metadata git-ombl needs out of `git
// log --raw`, one Commit per log entry, newest first.
package commitlog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/airRnot1106/git-ombl/ombl"
	"github.com/airRnot1106/git-ombl/ombl/gitexec"
	"github.com/airRnot1106/git-ombl/ombl/gittime"
)

type Opts struct {
	// FromSHA starts the walk at this commit instead of HEAD.
	FromSHA string
	// MaxCount stops the log after this many entries when > 0.
	MaxCount int
}

type Processor struct {
	repoDir    string
	gitCommand string
	opts       Opts
}

func New(repoDir string, opts Opts) *Processor {
	return &Processor{
		repoDir:    repoDir,
		gitCommand: "git",
		opts:       opts,
	}
}

// Run streams commits into res and blocks until the log is drained. res is
// closed when done. The walk is newest first; merge commits are diffed
// against every parent (`-m`), so Files holds the union of paths changed
// relative to at least one parent.
func (s *Processor) Run(ctx context.Context, res chan<- ombl.Commit) error {
	defer close(res)

	args := []string{
		"-c", "diff.renameLimit=10000",
		"--no-pager",
		"log",
		"--raw",
		"-m",
		"--pretty=format:!SHA: %H%n!Parents: %P%n!Committer: %ce%n!CName: %cn%n!Author: %ae%n!AName: %an%n!Date: %aI%n!Message: %s%n",
	}
	if s.opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", s.opts.MaxCount))
	}
	if s.opts.FromSHA != "" {
		args = append(args, s.opts.FromSHA)
	}

	r, err := gitexec.ExecPiped(ctx, s.gitCommand, s.repoDir, args)
	if err != nil {
		return err
	}

	var p parser
	p.dir = s.repoDir
	p.commits = res

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		if err := p.parse(scanner.Text()); err != nil {
			r.Close()
			return fmt.Errorf("error processing commit from %v. %v", s.repoDir, err)
		}
	}
	if err := scanner.Err(); err != nil {
		r.Close()
		return err
	}
	p.flush()
	return r.Close()
}

// RunSlice is Run collected into a slice.
func (s *Processor) RunSlice(ctx context.Context) (res []ombl.Commit, _ error) {
	resChan := make(chan ombl.Commit)
	done := make(chan bool)
	go func() {
		for r := range resChan {
			res = append(res, r)
		}
		done <- true
	}()
	err := s.Run(ctx, resChan)
	<-done
	return res, err
}

var (
	commitPrefix        = []byte("!SHA: ")
	parentsPrefix       = []byte("!Parents: ")
	committerPrefix     = []byte("!Committer: ")
	committerNamePrefix = []byte("!CName: ")
	authorPrefix        = []byte("!Author: ")
	authorNamePrefix    = []byte("!AName: ")
	datePrefix          = []byte("!Date: ")
	messagePrefix       = []byte("!Message: ")
	space               = []byte(" ")
	tab                 = []byte("\t")
	renamePrefix        = []byte("R")
	copyPrefix          = []byte("C")
)

func toStatus(action []byte) ombl.ChangeStatus {
	switch string(action) {
	case "A":
		return ombl.FileStatusAdded
	case "D":
		return ombl.FileStatusRemoved
	}
	// M, T and scored R/C fall through here
	return ombl.FileStatusModified
}

type parserState int

const (
	parserStateHeader parserState = iota
	parserStateFiles
)

// parser folds the prefix-tagged log lines into Commit values. A commit is
// sent when the next header starts, because `-m` repeats the header for
// every parent of a merge and the file lines of those repeats have to be
// merged into one Commit first.
type parser struct {
	commits chan<- ombl.Commit
	commit  *ombl.Commit
	dir     string
	state   parserState
}

func (p *parser) flush() {
	if p.commit != nil && p.commit.SHA != "" {
		p.commits <- *p.commit
		p.commit = nil
	}
}

func (p *parser) parse(line string) error {
	if line == "" {
		return nil
	}
	buf := []byte(line)
	for {
		switch p.state {
		case parserStateHeader:
			if bytes.HasPrefix(buf, commitPrefix) {
				sha := string(buf[len(commitPrefix):])
				if i := strings.Index(sha, " "); i > 0 {
					// trim tag info that can follow the sha
					sha = sha[0:i]
				}
				if p.commit != nil && p.commit.SHA == sha {
					// repeated header for the next parent of a merge; the
					// header lines re-state the same values and the file
					// lines accumulate into the same commit
					return nil
				}
				p.flush()
				p.commit = &ombl.Commit{
					SHA:   sha,
					Files: map[string]*ombl.FileChange{},
				}
				return nil
			}
			if p.commit == nil {
				return nil
			}
			if bytes.HasPrefix(buf, parentsPrefix) {
				parents := string(buf[len(parentsPrefix):])
				if len(parents) != 0 {
					p.commit.Parents = strings.Split(parents, " ")
				}
				return nil
			}
			if bytes.HasPrefix(buf, committerPrefix) {
				p.commit.CommitterEmail = string(buf[len(committerPrefix):])
				return nil
			}
			if bytes.HasPrefix(buf, committerNamePrefix) {
				p.commit.CommitterName = string(buf[len(committerNamePrefix):])
				return nil
			}
			if bytes.HasPrefix(buf, authorPrefix) {
				p.commit.AuthorEmail = string(buf[len(authorPrefix):])
				return nil
			}
			if bytes.HasPrefix(buf, authorNamePrefix) {
				p.commit.AuthorName = string(buf[len(authorNamePrefix):])
				return nil
			}
			if bytes.HasPrefix(buf, datePrefix) {
				d := bytes.TrimSpace(buf[len(datePrefix):])
				t, err := gittime.ParseCommitDate(string(d))
				if err != nil {
					return fmt.Errorf("error parsing commit %s in %s. %v", p.commit.SHA, p.dir, err)
				}
				p.commit.Date = t
				return nil
			}
			if bytes.HasPrefix(buf, messagePrefix) {
				p.commit.Message = string(buf[len(messagePrefix):])
				p.state = parserStateFiles
				return nil
			}
			return nil
		case parserStateFiles:
			if buf[0] == ':' {
				p.parseFileLine(buf)
				return nil
			}
			p.state = parserStateHeader
			continue
		}
	}
}

// parseFileLine handles one raw diff line:
//
//	:100644 100644 d1a02ae0 a452aaac M\tpandora/pom.xml
//	:100644 100644 d1a02ae0 a452aaac R87\told.txt\tnew.txt
func (p *parser) parseFileLine(buf []byte) {
	tok1 := bytes.Split(buf, space)
	if len(tok1) < 5 {
		return
	}
	tok2 := bytes.Split(bytes.Join(tok1[4:], space), tab)
	if len(tok2) < 2 {
		return
	}
	action := tok2[0]
	paths := tok2[1:]
	switch {
	case bytes.HasPrefix(action, renamePrefix) && len(paths) > 1:
		fromFn := string(bytes.TrimLeft(paths[0], " "))
		toFn := string(bytes.TrimLeft(paths[1], " "))
		p.addFile(&ombl.FileChange{
			Status:      ombl.FileStatusRemoved,
			Filename:    fromFn,
			Renamed:     true,
			RenamedFrom: fromFn,
			RenamedTo:   toFn,
		})
		p.addFile(&ombl.FileChange{
			Status:      ombl.FileStatusAdded,
			Filename:    toFn,
			Renamed:     true,
			RenamedFrom: fromFn,
			RenamedTo:   toFn,
		})
	case bytes.HasPrefix(action, copyPrefix) && len(paths) > 1:
		// a copy is basically a new file
		fromFn := string(bytes.TrimLeft(paths[0], " "))
		toFn := string(bytes.TrimLeft(paths[1], " "))
		p.addFile(&ombl.FileChange{
			Status:     ombl.FileStatusAdded,
			Filename:   toFn,
			Copied:     true,
			CopiedFrom: fromFn,
		})
	default:
		fn := string(bytes.TrimLeft(paths[0], " "))
		p.addFile(&ombl.FileChange{
			Filename: fn,
			Status:   toStatus(action),
		})
	}
}

// addFile records a change, preferring an earlier entry for the same path
// so a merge's per-parent repeats don't downgrade an add to a modify.
func (p *parser) addFile(fc *ombl.FileChange) {
	if _, ok := p.commit.Files[fc.Filename]; ok {
		return
	}
	p.commit.Files[fc.Filename] = fc
}
