package termtext

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. A nil *Options means a non-East Asian locale.
type Options struct {
	EastAsianWidth bool // if true, treats ambiguous East Asian code points (e.g. ● and …) as 2 wide. Use if the terminal runs in a CJK locale.
}

func (o *Options) condition() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if o == nil {
		return cond
	}

	cond.EastAsianWidth = o.EastAsianWidth
	return cond
}

// Width returns the number of terminal cells s occupies. ANSI escape sequences are ignored. s should not contain newlines.
func Width(s string, opts *Options) int {
	if s == "" {
		return 0
	}

	cond := opts.condition()
	width := 0
	segmentStart := 0

	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			i++
			continue
		}

		if segmentStart < i {
			width += cond.StringWidth(s[segmentStart:i])
		}

		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			i++
		} else {
			i += seqLen
		}
		segmentStart = i
	}

	if segmentStart < len(s) {
		width += cond.StringWidth(s[segmentStart:])
	}
	return width
}

// Truncate returns the longest grapheme-aligned prefix of s that, followed by tail, fits in width cells. If s already fits, it is returned unchanged. If not
// even tail fits, Truncate returns "". s must not contain ANSI escape sequences.
func Truncate(s string, width int, tail string, opts *Options) string {
	cond := opts.condition()
	if cond.StringWidth(s) <= width {
		return s
	}

	budget := width - cond.StringWidth(tail)
	if budget < 0 {
		return ""
	}

	used := 0
	end := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if used+w > budget {
			break
		}
		used += w
		end = iter.End()
	}
	return s[:end] + tail
}

// PadRight appends spaces to s until it occupies width cells. ANSI escape sequences in s are allowed. A wider s is returned unchanged.
func PadRight(s string, width int, opts *Options) string {
	w := Width(s, opts)
	if w >= width {
		return s
	}
	return s + spaces(width-w)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			final := s[i]
			if final >= 0x40 && final <= 0x7e { // Final byte of a CSI sequence
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == '\x1b' { // ST terminator (ESC \)
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2 // ESC followed by a single-character control sequence
	}
}
