// Package format renders a LineHistory for the terminal or for machines.
// Formatters are pure and never fail observably: a serialization problem
// degrades to a fixed placeholder string.
package format

import (
	"fmt"

	"github.com/airRnot1106/git-ombl/ombl"
)

// timestampLayout is how every human-facing renderer prints instants.
const timestampLayout = "2006-01-02 15:04:05"

type Formatter interface {
	Format(history *ombl.LineHistory) string
}

// Names lists the accepted formatter names.
func Names() []string {
	return []string{"colored", "json", "yaml", "table"}
}

// New returns the named formatter. color only affects the colored
// formatter and is applied per instance, never via process-wide state.
func New(name string, color bool) (Formatter, error) {
	switch name {
	case "colored":
		return NewColored(color), nil
	case "json":
		return JSON{}, nil
	case "yaml":
		return YAML{}, nil
	case "table":
		return Table{}, nil
	}
	return nil, fmt.Errorf("unknown format %q, expected one of %v", name, Names())
}

func shortSHA(sha string) string {
	if len(sha) >= 8 {
		return sha[0:8]
	}
	return sha
}
