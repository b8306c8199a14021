// Package gittime parses the date strings git-ombl accepts on the command
// line and in the commit log.
package gittime

import (
	"fmt"
	"time"

	"github.com/airRnot1106/git-ombl/ombl"
)

const (
	dateOnly     = "2006-01-02"
	dateAndClock = "2006-01-02 15:04:05"
)

// ParseCommitDate parses the author date as emitted by `git log
// --pretty=%aI`, normalized to UTC.
func ParseCommitDate(d string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing commit date `%v`. %v", d, err)
	}
	return t.UTC(), nil
}

// ParseUserDate converts a user-supplied since/until string into a UTC
// instant. Interpretations are tried in a fixed order, first hit wins:
//
//  1. offset-aware timestamp (RFC 3339, `Z` or numeric offset)
//  2. RFC-2822-style timestamp (`Mon, 01 Jan 2023 00:00:00 GMT` or +0000)
//  3. bare date `YYYY-MM-DD`, taken as UTC midnight
//  4. `YYYY-MM-DD HH:MM:SS`, taken as UTC
//
// A timestamp with date markers but no zone, such as
// `2023-01-01T00:00:00`, fails rather than silently defaulting.
func ParseUserDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC1123Z, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC1123, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(dateOnly, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateAndClock, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf(
		"%w: unable to parse date %q, supported formats: ISO 8601 (YYYY-MM-DDTHH:MM:SSZ), RFC 2822, YYYY-MM-DD, YYYY-MM-DD HH:MM:SS",
		ombl.ErrInvalidDateFormat, s)
}
