package format

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/airRnot1106/git-ombl/ombl"
)

// Table renders the aggregate as an aligned text table.
type Table struct{}

func (Table) Format(history *ombl.LineHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", history.FilePath)
	fmt.Fprintf(&b, "Line: %d\n", history.LineNumber)

	if len(history.Events) == 0 {
		b.WriteString("No history found")
		return b.String()
	}

	b.WriteString("\n")
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Commit\tAuthor\tTimestamp\tChange Type\tMessage")
	for _, ev := range history.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortSHA(ev.SHA),
			ev.Author,
			ev.Timestamp.Format(timestampLayout),
			ev.Type,
			ev.Message)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
