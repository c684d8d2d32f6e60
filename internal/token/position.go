package token

import "sort"

// LineColumn reconstructs a one-based line/column pair for a byte offset
// from the ordered list of line-break positions the tokenizer emitted.
func LineColumn(lineBreaks []Position, offset int) (line, col int) {
	i := sort.Search(len(lineBreaks), func(i int) bool {
		return lineBreaks[i].Start >= offset
	})

	line = i + 1
	if i == 0 {
		return line, offset + 1
	}
	return line, offset - lineBreaks[i-1].End + 1
}
