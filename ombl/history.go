package ombl

import "time"

// ChangeType describes what a commit did to the traced file.
type ChangeType string

const (
	// ChangeTypeCreated marks the earliest surviving commit for the file.
	ChangeTypeCreated = ChangeType("Created")
	// ChangeTypeModified marks every other commit that touched the file.
	ChangeTypeModified = ChangeType("Modified")
	// ChangeTypeDeleted is reserved for file removals. No query produces it
	// yet since a removed file never survives the relevance test.
	ChangeTypeDeleted = ChangeType("Deleted")
)

func (t ChangeType) String() string {
	return string(t)
}

// LineEvent is the projection of one relevant commit.
type LineEvent struct {
	SHA       string     `json:"commit_hash" yaml:"commit_hash"`
	Author    string     `json:"author" yaml:"author"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Message   string     `json:"message" yaml:"message"`
	Content   string     `json:"content" yaml:"content"`
	Type      ChangeType `json:"change_type" yaml:"change_type"`
}

// LineHistory is the result of one trace. It is built by the Tracer and
// read-only afterwards, safe to hand to multiple formatters at once.
type LineHistory struct {
	FilePath   string      `json:"file_path" yaml:"file_path"`
	LineNumber int         `json:"line_number" yaml:"line_number"`
	Events     []LineEvent `json:"entries" yaml:"entries"`
}
