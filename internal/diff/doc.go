// Package diff computes and renders line-level diffs between an "old" and a "new" string.
//
// Representation: A Diff holds the complete OldText/NewText and an ordered slice of EditOps, one per logical line. Each EditOp has an Op:
//   - OpEqual: the line is present, unchanged, in both texts. OldLine and NewLine are both set.
//   - OpDelete: the line is present only in the old text. Only OldLine is set.
//   - OpInsert: the line is present only in the new text. Only NewLine is set.
//
// Line numbers are 1-based; 0 means "not applicable". EditOp.Text never contains '\n'.
//
// Invariants:
//   - OldLine over the OpEqual and OpDelete ops is exactly 1..len(SplitLines(OldText)), in order.
//   - NewLine over the OpEqual and OpInsert ops is exactly 1..len(SplitLines(NewText)), in order.
//   - Within a contiguous block of changes, every OpDelete precedes every OpInsert.
//   - Diff.OldLines() == SplitLines(OldText) and Diff.NewLines() == SplitLines(NewText).
//
// Getting a diff: Use DiffText to compute a Diff:
//
//	d := diff.DiffText(oldText, newText)
//	fmt.Println(d.RenderUnifiedDiff(false, "old.txt", "new.txt", 3))
//
// The edit script is minimal (no other script has fewer inserted plus deleted lines). When several minimal scripts exist, the choice is deterministic: it is the
// one produced by the Myers bisection in github.com/sergi/go-diff followed by its merge cleanup.
//
// Rendering: For human consumption:
//   - Diff.RenderNumbered emits one row per op with old and new line numbers. This is the form the timeline viewer shows.
//   - Diff.RenderPretty emits a colorized view (no @@ hunk headers) with "+"/"-"/" " line markers.
//   - Diff.RenderUnifiedDiff emits a unified diff. Set color to true to include ANSI colors.
//
// None of the renderers escape text for markup; callers targeting HTML must escape.
//
// Newlines: This package treats '\n' as the line separator. A single trailing '\n' does not produce an extra empty line, so "a\n" and "a" both have one line.
package diff
