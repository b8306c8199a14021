package format

import (
	"encoding/json"

	"github.com/airRnot1106/git-ombl/ombl"
)

// JSON renders the aggregate as pretty-printed JSON.
type JSON struct{}

func (JSON) Format(history *ombl.LineHistory) string {
	b, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
