package ombl

import "time"

// ChangeStatus is the status of one file within a commit.
type ChangeStatus string

const (
	// FileStatusAdded is the added status
	FileStatusAdded = ChangeStatus("added")
	// FileStatusModified is the modified status
	FileStatusModified = ChangeStatus("modified")
	// FileStatusRemoved is the removed status
	FileStatusRemoved = ChangeStatus("removed")
)

func (s ChangeStatus) String() string {
	return string(s)
}

// FileChange is a specific detail around a file in a commit.
type FileChange struct {
	Filename    string
	Status      ChangeStatus
	Renamed     bool
	Copied      bool
	RenamedFrom string
	RenamedTo   string
	CopiedFrom  string
}

// Commit is a specific detail around a commit, supplied by the backend per
// query and never cached across calls.
type Commit struct {
	SHA            string
	AuthorName     string
	AuthorEmail    string
	CommitterName  string
	CommitterEmail string
	Message        string
	Date           time.Time
	Parents        []string
	Files          map[string]*FileChange
}

func (c Commit) String() string {
	return c.SHA
}

// Author returns either the author name (preference) or the email if not found
func (c Commit) Author() string {
	if c.AuthorName != "" {
		return c.AuthorName
	}
	return c.AuthorEmail
}

// Touches reports whether path changed in this commit relative to a parent.
// For a root commit git lists every path in the tree as added, so creation
// commits are covered.
func (c Commit) Touches(path string) (*FileChange, bool) {
	fc, ok := c.Files[path]
	return fc, ok
}
