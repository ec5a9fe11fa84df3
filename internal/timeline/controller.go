package timeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/centuriae/revtrail/internal/diff"
)

var (
	ErrOutOfRange    = errors.New("timeline: position out of range")
	ErrEmptyTimeline = errors.New("timeline: no revisions")
)

// RenderResult is everything a renderer needs to show one position of the timeline.
type RenderResult struct {
	Position      int       // Index of Current in the timeline.
	Current       Revision  // The selected revision.
	Previous      Revision  // The revision before Current, or the InitialID sentinel for position 0.
	Diff          diff.Diff // Previous.Content -> Current.Content.
	FormattedDate string    // FormatDate(Current.Timestamp).
}

// Transition returns "<short previous id> → <short current id>".
func (r RenderResult) Transition() string {
	return ShortID(r.Previous.ID) + " → " + ShortID(r.Current.ID)
}

// Marker describes one timeline entry for drawing the timeline strip.
type Marker struct {
	Index   int
	ID      string
	Subject string
	Active  bool // true for the current position
}

// Controller owns a chronological timeline and its current position.
type Controller struct {
	mu        sync.Mutex
	revisions []Revision // oldest first; never mutated after New
	position  int        // -1 if revisions is empty
}

// New creates a Controller from history, which must be ordered newest-first. The timeline is stored oldest-first.
//
// The initial position is the newest revision, unless deepLinkPrefix is non-empty and is a prefix of some revision ID, in which case the first such revision
// (oldest-first) is selected. An unmatched deepLinkPrefix is ignored.
//
// New returns the RenderResult for the initial position. If history is empty, it returns a usable Controller with no current position and ErrEmptyTimeline.
func New(history []Revision, deepLinkPrefix string) (*Controller, RenderResult, error) {
	revisions := make([]Revision, len(history))
	for i, rev := range history {
		revisions[len(history)-1-i] = rev
	}

	c := &Controller{revisions: revisions, position: len(revisions) - 1}
	if len(revisions) == 0 {
		return c, RenderResult{}, ErrEmptyTimeline
	}

	if idx, ok := c.ResolveByPrefix(deepLinkPrefix); ok {
		c.position = idx
	}

	res, err := c.Select(c.position)
	if err != nil {
		return nil, RenderResult{}, err
	}
	return c, res, nil
}

// Select makes index the current position and returns its RenderResult. It returns an error wrapping ErrOutOfRange if index is not in [0, Len()); the position
// is then unchanged. Selecting the same index again yields an identical result.
func (c *Controller) Select(index int) (RenderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(index)
}

// Next selects the position after the current one.
func (c *Controller) Next() (RenderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.revisions) == 0 {
		return RenderResult{}, ErrEmptyTimeline
	}
	return c.selectLocked(c.position + 1)
}

// Prev selects the position before the current one.
func (c *Controller) Prev() (RenderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.revisions) == 0 {
		return RenderResult{}, ErrEmptyTimeline
	}
	return c.selectLocked(c.position - 1)
}

// Current re-derives the RenderResult of the current position.
func (c *Controller) Current() (RenderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.revisions) == 0 {
		return RenderResult{}, ErrEmptyTimeline
	}
	return c.selectLocked(c.position)
}

func (c *Controller) selectLocked(index int) (RenderResult, error) {
	if index < 0 || index >= len(c.revisions) {
		return RenderResult{}, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, index, len(c.revisions))
	}

	c.position = index

	previous := initialRevision
	if index > 0 {
		previous = c.revisions[index-1]
	}
	current := c.revisions[index]

	return RenderResult{
		Position:      index,
		Current:       current,
		Previous:      previous,
		Diff:          diff.DiffText(previous.Content, current.Content),
		FormattedDate: FormatDate(current.Timestamp),
	}, nil
}

// ResolveByPrefix returns the index of the first revision (oldest-first) whose ID starts with prefix. Matching is case-sensitive. An empty prefix matches nothing.
// It does not change the position.
func (c *Controller) ResolveByPrefix(prefix string) (int, bool) {
	if prefix == "" {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, rev := range c.revisions {
		if strings.HasPrefix(rev.ID, prefix) {
			return i, true
		}
	}
	return 0, false
}

// Position returns the current position, or -1 if the timeline is empty.
func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Len returns the number of revisions in the timeline.
func (c *Controller) Len() int {
	return len(c.revisions)
}

// Revisions returns a copy of the timeline, oldest first.
func (c *Controller) Revisions() []Revision {
	out := make([]Revision, len(c.revisions))
	copy(out, c.revisions)
	return out
}

// Markers returns one Marker per revision, oldest first, with the current position marked Active.
func (c *Controller) Markers() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	markers := make([]Marker, len(c.revisions))
	for i, rev := range c.revisions {
		markers[i] = Marker{Index: i, ID: rev.ID, Subject: rev.Subject, Active: i == c.position}
	}
	return markers
}
