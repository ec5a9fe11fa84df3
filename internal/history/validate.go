package history

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/centuriae/revtrail/internal/timeline"
)

var (
	ErrEmptyID     = errors.New("history: revision has an empty id")
	ErrDuplicateID = errors.New("history: duplicate revision id")
)

// Validate checks that every revision has a non-empty ID and that IDs are unique.
func Validate(revs []timeline.Revision) error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, rev := range revs {
		if rev.ID == "" {
			return fmt.Errorf("%w (revision %d)", ErrEmptyID, i)
		}
		if seen.Contains(rev.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rev.ID)
		}
		seen.Add(rev.ID)
	}
	return nil
}
