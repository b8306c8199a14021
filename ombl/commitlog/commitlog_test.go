package commitlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airRnot1106/git-ombl/ombl"
)

// parseAll drives the line parser with canned `git log --raw` output.
func parseAll(t *testing.T, log string) []ombl.Commit {
	t.Helper()
	res := make(chan ombl.Commit, 16)
	var p parser
	p.dir = "testrepo"
	p.commits = res
	for _, line := range strings.Split(log, "\n") {
		require.NoError(t, p.parse(line))
	}
	p.flush()
	close(res)
	var out []ombl.Commit
	for c := range res {
		out = append(out, c)
	}
	return out
}

const linearLog = `!SHA: c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3
!Parents: b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-01T03:00:00+02:00
!Message: second change

:100644 100644 1111111 2222222 M	main.go

!SHA: b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2
!Parents:
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-01T00:00:00Z
!Message: initial

:000000 100644 0000000 1111111 A	main.go
:000000 100644 0000000 3333333 A	README.md
`

func TestParseLinearLog(t *testing.T) {
	got := parseAll(t, linearLog)
	require.Len(t, got, 2)

	head := got[0]
	assert.Equal(t, "c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3c3", head.SHA)
	assert.Equal(t, []string{"b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2"}, head.Parents)
	assert.Equal(t, "Test User", head.AuthorName)
	assert.Equal(t, "test@example.com", head.AuthorEmail)
	assert.Equal(t, "Test Committer", head.CommitterName)
	assert.Equal(t, "second change", head.Message)
	// author date normalized to UTC
	assert.Equal(t, time.Date(2023, 6, 1, 1, 0, 0, 0, time.UTC), head.Date)
	require.Contains(t, head.Files, "main.go")
	assert.Equal(t, ombl.FileStatusModified, head.Files["main.go"].Status)

	root := got[1]
	assert.Empty(t, root.Parents)
	require.Len(t, root.Files, 2)
	assert.Equal(t, ombl.FileStatusAdded, root.Files["main.go"].Status)
	assert.Equal(t, ombl.FileStatusAdded, root.Files["README.md"].Status)
}

// mergeLog is what `git log --raw -m` emits for a merge: the header block
// repeats once per parent and each repeat carries its own file lines.
const mergeLog = `!SHA: d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4
!Parents: a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1 b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-02T00:00:00Z
!Message: merge branch

:100644 100644 1111111 2222222 M	feature.go

!SHA: d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4
!Parents: a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1 b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-02T00:00:00Z
!Message: merge branch

:100644 100644 3333333 4444444 M	main.go
`

func TestParseMergeRepeatsCollapse(t *testing.T) {
	got := parseAll(t, mergeLog)
	require.Len(t, got, 1)

	merge := got[0]
	assert.Len(t, merge.Parents, 2)
	// union of the per-parent diffs
	require.Len(t, merge.Files, 2)
	assert.Contains(t, merge.Files, "feature.go")
	assert.Contains(t, merge.Files, "main.go")
}

const renameLog = `!SHA: e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5
!Parents: d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4d4
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-03T00:00:00Z
!Message: rename and copy

:100644 100644 1111111 1111111 R100	old.go	new.go
:100644 100644 2222222 2222222 C75	base.go	copy.go
`

func TestParseRenameAndCopy(t *testing.T) {
	got := parseAll(t, renameLog)
	require.Len(t, got, 1)
	files := got[0].Files

	require.Contains(t, files, "old.go")
	assert.Equal(t, ombl.FileStatusRemoved, files["old.go"].Status)
	assert.True(t, files["old.go"].Renamed)
	assert.Equal(t, "new.go", files["old.go"].RenamedTo)

	require.Contains(t, files, "new.go")
	assert.Equal(t, ombl.FileStatusAdded, files["new.go"].Status)
	assert.Equal(t, "old.go", files["new.go"].RenamedFrom)

	require.Contains(t, files, "copy.go")
	assert.Equal(t, ombl.FileStatusAdded, files["copy.go"].Status)
	assert.True(t, files["copy.go"].Copied)
	assert.Equal(t, "base.go", files["copy.go"].CopiedFrom)
}

func TestParseDeletion(t *testing.T) {
	log := `!SHA: f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6f6
!Parents: e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5
!Committer: test@example.com
!CName: Test Committer
!Author: test@example.com
!AName: Test User
!Date: 2023-06-04T00:00:00Z
!Message: drop file

:100644 000000 1111111 0000000 D	gone.go
`
	got := parseAll(t, log)
	require.Len(t, got, 1)
	require.Contains(t, got[0].Files, "gone.go")
	assert.Equal(t, ombl.FileStatusRemoved, got[0].Files["gone.go"].Status)
}

func TestParseBadDateSurfaces(t *testing.T) {
	log := strings.Replace(linearLog, "2023-06-01T03:00:00+02:00", "yesterday", 1)
	res := make(chan ombl.Commit, 16)
	var p parser
	p.commits = res
	var err error
	for _, line := range strings.Split(log, "\n") {
		if err = p.parse(line); err != nil {
			break
		}
	}
	assert.Error(t, err)
}
