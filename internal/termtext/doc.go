// Package termtext measures and fits text for monospace terminals.
//
// Widths are counted per grapheme cluster, so combining marks, emoji sequences, and wide East Asian characters occupy the number of cells a terminal actually
// draws. ANSI escape sequences have zero width.
package termtext
