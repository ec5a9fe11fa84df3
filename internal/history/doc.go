// Package history loads revision histories for the timeline: from a git repository (every committed version of one file) or from a history file in JSON or
// YAML.
//
// All loaders return revisions newest-first, which is the order timeline.New expects, and reject histories with empty or duplicate revision IDs.
//
// The history file format is a list of records:
//
//	[{"hash": "...", "date": "2024-03-05T10:00:00+01:00", "subject": "...", "content": "...", "filename": "post.md"}]
//
// where "date" and "filename" are optional.
package history
