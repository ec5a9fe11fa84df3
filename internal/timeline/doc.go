// Package timeline navigates an ordered history of text revisions and produces, for the selected revision, a line diff against its predecessor.
//
// A Controller is created from a history supplied newest-first (the order `git log` prints) and keeps it oldest-first. Exactly one position is current. Selecting
// a position returns a RenderResult holding the current and previous revisions, the diff.Diff between their contents, and a display date. The first revision is
// compared against an empty sentinel revision whose ID is InitialID.
//
// Errors:
//   - ErrOutOfRange: Select was given an index outside [0, Len()). This is a caller bug and is always returned.
//   - ErrEmptyTimeline: the history has no revisions, so there is no current position.
//
// Unparseable timestamps and unmatched identifier prefixes are not errors: the former render as DateNotAvailable, the latter leave the position unchanged.
//
// A Controller is safe for concurrent use; Select calls are serialized.
package timeline
