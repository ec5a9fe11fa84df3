package timeline

import (
	"strings"
	"time"
)

// InitialID is the ID of the sentinel revision that precedes the first real revision.
const InitialID = "Initial"

// DateNotAvailable is the display date used when a revision's timestamp is missing or cannot be parsed.
const DateNotAvailable = "N/A"

// ShortIDLength is the number of characters ShortID keeps.
const ShortIDLength = 7

// Revision is one snapshot of the tracked content.
type Revision struct {
	ID        string // Unique and stable, typically a commit hash.
	Content   string
	Subject   string
	Timestamp string // Optional; any format FormatDate understands.
}

// initialRevision is the empty predecessor of the first revision.
var initialRevision = Revision{ID: InitialID}

// ShortID returns the first ShortIDLength characters of id, or id itself if it is shorter.
func ShortID(id string) string {
	n := 0
	for i := range id {
		if n == ShortIDLength {
			return id[:i]
		}
		n++
	}
	return id
}

// dateLayouts are tried in order by FormatDate. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",     // git --date=iso
	"Mon Jan 2 15:04:05 2006 -0700", // git --date=default
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate returns the UTC calendar date (YYYY-MM-DD) of timestamp, or DateNotAvailable if timestamp is empty or not in a known format.
func FormatDate(timestamp string) string {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return DateNotAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return DateNotAvailable
}
