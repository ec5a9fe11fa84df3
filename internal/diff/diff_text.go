package diff

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText diffs oldText to newText, returning a Diff.
//
// Both texts are split with SplitLines. Lines are compared exactly (no whitespace normalization). It never fails for valid strings; an internal invariant violation
// panics.
func DiffText(oldText, newText string) Diff {
	oldLines := SplitLines(oldText)
	newLines := SplitLines(newText)

	d := Diff{OldText: oldText, NewText: newText, Ops: diffLines(oldLines, newLines)}

	if err := d.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}

	return d
}

// SplitLines splits text into logical lines on '\n'. A single trailing '\n' terminates the last line rather than starting an empty one. The empty string has no
// lines; "\n" has one empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, defaultEOL)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines computes the ops for already-split lines.
func diffLines(oldLines, newLines []string) []EditOp {
	b := newOpBuilder(len(oldLines) + len(newLines))

	if len(oldLines) == 0 || len(newLines) == 0 {
		b.dels = oldLines
		b.ins = newLines
		b.flush()
		return b.ops
	}

	// Diff based on lines: each distinct line becomes one rune.
	enc := newLineEncoder()
	rOld, okOld := enc.encode(oldLines)
	rNew, okNew := enc.encode(newLines)
	if !okOld || !okNew {
		// More distinct lines than runes. Still a valid (if not minimal) script.
		b.dels = oldLines
		b.ins = newLines
		b.flush()
		return b.ops
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline: full Myers bisection, no half-match shortcut, so the result is minimal
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.equal(enc.decode(d.Text))
		case diffmatchpatch.DiffDelete:
			b.dels = append(b.dels, enc.decode(d.Text)...)
		case diffmatchpatch.DiffInsert:
			b.ins = append(b.ins, enc.decode(d.Text)...)
		}
	}
	b.flush()

	return b.ops
}

// opBuilder numbers lines and orders each change block as deletes, then inserts.
type opBuilder struct {
	ops     []EditOp
	oldLine int
	newLine int
	dels    []string // pending deletes of the current change block
	ins     []string // pending inserts of the current change block
}

func newOpBuilder(capacity int) *opBuilder {
	return &opBuilder{
		ops:     make([]EditOp, 0, capacity),
		oldLine: 1,
		newLine: 1,
	}
}

func (b *opBuilder) equal(lines []string) {
	b.flush()
	for _, line := range lines {
		b.ops = append(b.ops, EditOp{Op: OpEqual, Text: line, OldLine: b.oldLine, NewLine: b.newLine})
		b.oldLine++
		b.newLine++
	}
}

func (b *opBuilder) flush() {
	for _, line := range b.dels {
		b.ops = append(b.ops, EditOp{Op: OpDelete, Text: line, OldLine: b.oldLine})
		b.oldLine++
	}
	for _, line := range b.ins {
		b.ops = append(b.ops, EditOp{Op: OpInsert, Text: line, NewLine: b.newLine})
		b.newLine++
	}
	b.dels = nil
	b.ins = nil
}

// Runes in the UTF-16 surrogate range do not survive a string round trip (they become U+FFFD), so line indexes skip over it.
const (
	surrogateMin    = 0xD800
	surrogateSpan   = 0x800
	maxEncodedLines = unicode.MaxRune + 1 - surrogateSpan
)

// lineEncoder assigns each distinct line a rune, so diffmatchpatch can diff lines as if they were characters.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

// encode returns the rune string for lines. It returns false if there are more distinct lines than encodable runes.
func (e *lineEncoder) encode(lines []string) ([]rune, bool) {
	out := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := e.index[line]
		if !ok {
			if len(e.lines) >= maxEncodedLines {
				return nil, false
			}
			r = runeForIndex(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		out[i] = r
	}
	return out, true
}

// decode maps a rune string produced from encode back to its lines.
func (e *lineEncoder) decode(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	for _, r := range s {
		idx := indexForRune(r)
		if idx >= 0 && idx < len(e.lines) {
			out = append(out, e.lines[idx])
		}
	}
	return out
}

func runeForIndex(i int) rune {
	r := rune(i)
	if r >= surrogateMin {
		r += surrogateSpan
	}
	return r
}

func indexForRune(r rune) int {
	if r >= surrogateMin+surrogateSpan {
		r -= surrogateSpan
	}
	return int(r)
}
