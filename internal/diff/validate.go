package diff

import (
	"fmt"
	"slices"
	"strings"
)

// validate checks the Diff invariants and returns an error on the first violation.
func (d Diff) validate() error {
	oldLine := 1
	newLine := 1
	inserting := false // true once the current change block has emitted an insert

	for i, op := range d.Ops {
		if strings.Contains(op.Text, defaultEOL) {
			return fmt.Errorf("op[%d]: Text contains EOL", i)
		}

		switch op.Op {
		case OpEqual:
			if op.OldLine != oldLine || op.NewLine != newLine {
				return fmt.Errorf("op[%d]: OpEqual has lines (%d,%d), want (%d,%d)", i, op.OldLine, op.NewLine, oldLine, newLine)
			}
			oldLine++
			newLine++
			inserting = false
		case OpDelete:
			if inserting {
				return fmt.Errorf("op[%d]: OpDelete follows OpInsert in the same change block", i)
			}
			if op.OldLine != oldLine || op.NewLine != 0 {
				return fmt.Errorf("op[%d]: OpDelete has lines (%d,%d), want (%d,0)", i, op.OldLine, op.NewLine, oldLine)
			}
			oldLine++
		case OpInsert:
			if op.OldLine != 0 || op.NewLine != newLine {
				return fmt.Errorf("op[%d]: OpInsert has lines (%d,%d), want (0,%d)", i, op.OldLine, op.NewLine, newLine)
			}
			newLine++
			inserting = true
		default:
			return fmt.Errorf("op[%d]: invalid Op %v", i, op.Op)
		}
	}

	if !slices.Equal(d.OldLines(), SplitLines(d.OldText)) {
		return fmt.Errorf("diff: ops do not reconstruct OldText")
	}
	if !slices.Equal(d.NewLines(), SplitLines(d.NewText)) {
		return fmt.Errorf("diff: ops do not reconstruct NewText")
	}
	return nil
}
