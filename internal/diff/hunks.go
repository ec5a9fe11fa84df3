package diff

// Hunks groups the changes of d into hunks with up to contextSize unchanged lines before and after each group of changes. Two groups separated by at most
// 2*contextSize unchanged lines are merged into one hunk. A negative contextSize is treated as 0. A diff without changes has no hunks.
func (d Diff) Hunks(contextSize int) []DiffHunk {
	if contextSize < 0 {
		contextSize = 0
	}

	var hunks []DiffHunk
	n := len(d.Ops)
	i := 0
	for i < n {
		if d.Ops[i].Op == OpEqual {
			i++
			continue
		}

		start := i - contextSize
		if start < 0 {
			start = 0
		}

		// Extend over later changes while the equal gaps between them are small enough.
		lastChange := i
		j := i + 1
		for j < n {
			if d.Ops[j].Op != OpEqual {
				lastChange = j
				j++
				continue
			}
			k := j
			for k < n && d.Ops[k].Op == OpEqual {
				k++
			}
			if k < n && k-j <= 2*contextSize {
				j = k
				continue
			}
			break
		}

		end := lastChange + 1 + contextSize
		if end > n {
			end = n
		}

		hunks = append(hunks, d.newHunk(start, end))
		i = end
	}
	return hunks
}

// newHunk builds the hunk covering d.Ops[start:end].
func (d Diff) newHunk(start, end int) DiffHunk {
	h := DiffHunk{Ops: d.Ops[start:end]}

	oldBefore, newBefore := d.linesBefore(start)
	h.OldStart = oldBefore
	h.NewStart = newBefore

	hasDelete := false
	hasInsert := false
	for _, op := range h.Ops {
		switch op.Op {
		case OpEqual:
			h.OldCount++
			h.NewCount++
		case OpDelete:
			h.OldCount++
			hasDelete = true
		case OpInsert:
			h.NewCount++
			hasInsert = true
		}
	}
	if h.OldCount > 0 {
		h.OldStart++
	}
	if h.NewCount > 0 {
		h.NewStart++
	}

	switch {
	case hasDelete && hasInsert:
		h.Op = OpReplace
	case hasDelete:
		h.Op = OpDelete
	default:
		h.Op = OpInsert
	}
	return h
}

// linesBefore returns how many old and new lines precede d.Ops[idx].
func (d Diff) linesBefore(idx int) (int, int) {
	oldLines, newLines := -1, -1
	for k := idx - 1; k >= 0 && (oldLines < 0 || newLines < 0); k-- {
		op := d.Ops[k]
		if oldLines < 0 && op.OldLine > 0 {
			oldLines = op.OldLine
		}
		if newLines < 0 && op.NewLine > 0 {
			newLines = op.NewLine
		}
	}
	if oldLines < 0 {
		oldLines = 0
	}
	if newLines < 0 {
		newLines = 0
	}
	return oldLines, newLines
}
