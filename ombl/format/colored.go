package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/airRnot1106/git-ombl/ombl"
)

// Colored is the default human-facing renderer.
type Colored struct {
	path       *color.Color
	line       *color.Color
	sha        *color.Color
	author     *color.Color
	timestamp  *color.Color
	changeType *color.Color
	message    *color.Color
	content    *color.Color
	dimmed     *color.Color
}

// NewColored returns the colored formatter. Color is decided here once,
// per instance, so output is deterministic regardless of the environment
// the process runs in.
func NewColored(enabled bool) Colored {
	c := Colored{
		path:       color.New(color.FgCyan),
		line:       color.New(color.FgYellow),
		sha:        color.New(color.FgHiGreen),
		author:     color.New(color.FgBlue),
		timestamp:  color.New(color.FgWhite),
		changeType: color.New(color.FgMagenta),
		message:    color.New(color.FgWhite),
		content:    color.New(color.FgHiWhite),
		dimmed:     color.New(color.Faint),
	}
	for _, v := range []*color.Color{c.path, c.line, c.sha, c.author, c.timestamp, c.changeType, c.message, c.content, c.dimmed} {
		if enabled {
			v.EnableColor()
		} else {
			v.DisableColor()
		}
	}
	return c
}

func (f Colored) Format(history *ombl.LineHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s\n",
		f.path.Sprint(history.FilePath),
		f.line.Sprintf("%d", history.LineNumber))

	if len(history.Events) == 0 {
		b.WriteString(f.dimmed.Sprint("No history found"))
		return b.String()
	}

	for i, ev := range history.Events {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s %s\n%s",
			f.sha.Sprint(shortSHA(ev.SHA)),
			f.author.Sprint(ev.Author),
			f.timestamp.Sprint(ev.Timestamp.Format(timestampLayout)),
			f.changeType.Sprintf("(%s)", ev.Type),
			f.message.Sprint(ev.Message))
		if ev.Content != "" {
			fmt.Fprintf(&b, "\n  %s", f.content.Sprint(ev.Content))
		}
	}
	return b.String()
}
