package format

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/airRnot1106/git-ombl/ombl"
)

// YAML renders the aggregate as YAML.
type YAML struct{}

func (YAML) Format(history *ombl.LineHistory) string {
	b, err := yaml.Marshal(history)
	if err != nil {
		return "Error formatting YAML"
	}
	return strings.TrimRight(string(b), "\n")
}
