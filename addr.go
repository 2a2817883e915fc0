package sheetdb

import (
	"strconv"
	"strings"
)

// OpenEnd marks an unbounded range end ("to the end of whatever data exists").
const OpenEnd = -1

// Range is a parsed A1-style range with 0-based coordinates. EndRow/EndCol
// are OpenEnd when the input leaves that side unbounded (as in "A:A" or "1:5").
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

func (r Range) containsRow(row int) bool {
	return row >= r.StartRow && (r.EndRow == OpenEnd || row <= r.EndRow)
}

func (r Range) containsCol(col int) bool {
	return col >= r.StartCol && (r.EndCol == OpenEnd || col <= r.EndCol)
}

func (r Range) contains(row, col int) bool {
	return r.containsRow(row) && r.containsCol(col)
}

// ColumnNumber converts column letters to a 0-based column index, treating
// the letters as a bijective base-26 numeral (A=1 .. Z=26, so "AA" follows
// "Z"). Case-insensitive; anything but ASCII letters is an error.
func ColumnNumber(letters string) (int, error) {
	if letters == "" {
		return 0, rangeErrf(letters, letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, rangeErrf(letters, letters)
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, nil
}

// ColumnLetters is the inverse of ColumnNumber: the shortest letter form of
// a 0-based column index.
func ColumnLetters(index int) string {
	if index < 0 {
		panic("sheetdb: negative column index")
	}
	n := index + 1
	var s string
	for n > 0 {
		s = string(rune((n-1)%26+'A')) + s
		n = (n - 1) / 26
	}
	return s
}

// ParseRange parses a single cell reference ("A1") or a colon-separated pair
// ("A1:C10"). Either component may omit the row, the column, or both:
// "A:A" is the whole column A, "1:5" is whole rows 1 through 5. Rows are
// 1-based in the input and 0-based in the result. A missing row or column
// defaults to 0 on the start side and to OpenEnd on the end side.
func ParseRange(s string) (Range, error) {
	startTok, endTok, paired := strings.Cut(s, ":")
	if !paired {
		endTok = startTok
	}
	if strings.Contains(endTok, ":") {
		return Range{}, rangeErrf(s, endTok)
	}

	startRow, startCol, err := parseRangeToken(s, startTok)
	if err != nil {
		return Range{}, err
	}
	endRow, endCol, err := parseRangeToken(s, endTok)
	if err != nil {
		return Range{}, err
	}

	r := Range{StartRow: 0, StartCol: 0, EndRow: OpenEnd, EndCol: OpenEnd}
	if startRow >= 0 {
		r.StartRow = startRow
	}
	if startCol >= 0 {
		r.StartCol = startCol
	}
	if endRow >= 0 {
		r.EndRow = endRow
	}
	if endCol >= 0 {
		r.EndCol = endCol
	}
	return r, nil
}

// parseRangeToken returns the token's 0-based row and column, either of
// which is -1 when absent. Valid shapes: letters-only, digits-only, or
// letters followed by digits.
func parseRangeToken(input, tok string) (row, col int, err error) {
	if tok == "" {
		return 0, 0, rangeErrf(input, tok)
	}
	i := 0
	for i < len(tok) && isASCIILetter(tok[i]) {
		i++
	}
	letters, digits := tok[:i], tok[i:]

	col = -1
	if letters != "" {
		col, err = ColumnNumber(letters)
		if err != nil {
			return 0, 0, rangeErrf(input, tok)
		}
	}

	row = -1
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return 0, 0, rangeErrf(input, tok)
		}
		row = n - 1
	}
	return row, col, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
