package termtext

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// Sanitize makes revision text safe to print to a terminal.
//   - If tabWidth > 0, each \t becomes tabWidth spaces. Otherwise \t is kept.
//   - \r and \n are kept.
//   - Other ASCII control characters (<= 0x1F and 0x7F) become "\xXX", so content cannot emit escape sequences.
//   - C1 control characters (U+0080 to U+009F, e.g. the 8-bit CSI U+009B) become "\u00XX".
//   - Invalid UTF-8 becomes U+FFFD.
func Sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('�')
			i++
			continue
		}
		i += size

		switch r {
		case '\t':
			if tabWidth > 0 {
				b.WriteString(spaces(tabWidth))
			} else {
				b.WriteRune('\t')
			}
		case '\n', '\r':
			b.WriteRune(r)
		default:
			if r <= 0x7F && (r < 0x20 || r == 0x7F) {
				code := byte(r)
				b.WriteByte('\\')
				b.WriteByte('x')
				b.WriteByte(hexDigits[code>>4])
				b.WriteByte(hexDigits[code&0x0F])
				continue
			}
			if r >= 0x80 && r <= 0x9F {
				code := byte(r)
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[code>>4])
				b.WriteByte(hexDigits[code&0x0F])
				continue
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
