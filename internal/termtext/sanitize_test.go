package termtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		tabWidth int
		want     string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "hello, 世界", want: "hello, 世界"},
		{name: "escape", in: "a\x1b[31mb", want: `a\x1B[31mb`},
		{name: "bell and del", in: "\a\x7f", want: `\x07\x7F`},
		{name: "newlines kept", in: "a\r\nb", want: "a\r\nb"},
		{name: "tab kept", in: "a\tb", want: "a\tb"},
		{name: "tab expanded", in: "a\tb", tabWidth: 2, want: "a  b"},
		{name: "invalid utf8", in: "a\xffb", want: "a�b"},
		{name: "c1 csi", in: "a\u009b31mb", want: `a\u009B31mb`},
		{name: "c1 bounds", in: "\u0080\u009f\u00a0", want: "\\u0080\\u009F\u00a0"},
		{name: "raw c1 byte is invalid", in: "a\x9bb", want: "a�b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in, tc.tabWidth))
		})
	}
}
