// Package view renders a timeline position for output: plain or colored text for terminals, unified and pretty diffs, a standalone HTML page, and a debug
// dump.
//
// Renderers only read a timeline.RenderResult and its markers. They never mutate the timeline. All escaping for a target medium happens here; the diff engine
// produces raw text.
package view
