package diff

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text. OpReplace is only used by DiffHunk; an EditOp is never OpReplace.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Diff is a line diff from old text to new text.
//
// As an illustration: imagine a Markdown post where one paragraph line is reworded. DiffText produces OpEqual ops for the unchanged prefix, an OpDelete for the
// old wording, an OpInsert for the new wording, and OpEqual ops for the suffix.
//
// Invariants: see the package documentation.
type Diff struct {
	OldText string   // Entire original text.
	NewText string   // Entire revised text.
	Ops     []EditOp // Ordered ops covering every line of OldText and NewText.
}

// EditOp is a single line of a Diff.
type EditOp struct {
	Op      Op     // OpEqual, OpInsert, or OpDelete.
	Text    string // The line, without its '\n'.
	OldLine int    // 1-based line number in OldText; 0 for OpInsert.
	NewLine int    // 1-based line number in NewText; 0 for OpDelete.
}

// DiffHunk is a group of changed lines plus surrounding context, as produced by Diff.Hunks.
//
// Operations:
//   - OpInsert: the hunk only inserts lines.
//   - OpDelete: the hunk only deletes lines.
//   - OpReplace: the hunk both deletes and inserts lines.
//
// OldStart/NewStart follow the unified diff convention: the first line number covered by the hunk, or, when the count is 0, the line number right before the
// hunk's position.
type DiffHunk struct {
	Op       Op
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Ops      []EditOp // Context and change ops, in order.
}

// Stats counts lines by operation.
type Stats struct {
	Inserted  int
	Deleted   int
	Unchanged int
}

// defaultEOL is the EOL ('\n').
//
// This constant exists because the design may change to allow configurable EOLs (maybe Windows needs "\r\n"), and this provides a nice hook to find callsites.
const defaultEOL = "\n"

// OldLines reconstructs the lines of OldText from the OpEqual and OpDelete ops.
func (d Diff) OldLines() []string {
	var out []string
	for _, op := range d.Ops {
		if op.Op == OpEqual || op.Op == OpDelete {
			out = append(out, op.Text)
		}
	}
	return out
}

// NewLines reconstructs the lines of NewText from the OpEqual and OpInsert ops.
func (d Diff) NewLines() []string {
	var out []string
	for _, op := range d.Ops {
		if op.Op == OpEqual || op.Op == OpInsert {
			out = append(out, op.Text)
		}
	}
	return out
}

// Stats returns the number of inserted, deleted, and unchanged lines in d.
func (d Diff) Stats() Stats {
	var s Stats
	for _, op := range d.Ops {
		switch op.Op {
		case OpEqual:
			s.Unchanged++
		case OpInsert:
			s.Inserted++
		case OpDelete:
			s.Deleted++
		}
	}
	return s
}

// HasChanges reports whether d contains any inserted or deleted lines.
func (d Diff) HasChanges() bool {
	for _, op := range d.Ops {
		if op.Op != OpEqual {
			return true
		}
	}
	return false
}
