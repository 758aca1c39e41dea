package service

import (
	"fmt"
	"strconv"
)

// contentToken is one syntactic token of a page content stream, with its
// byte span in the original stream so surrounding bytes can be copied
// verbatim.
type contentToken struct {
	val        string
	start, end int
}

func isContentWhitespace(c byte) bool {
	switch c {
	case 0x00, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isContentDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skipLiteralString advances past a "(...)" string starting at pos,
// honoring backslash escapes and balanced unescaped parentheses.
func skipLiteralString(data []byte, pos int) (int, error) {
	depth := 0
	for i := pos; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated string literal at offset %d", pos)
}

// skipHexString advances past a "<...>" string starting at pos.
func skipHexString(data []byte, pos int) (int, error) {
	for i := pos + 1; i < len(data); i++ {
		if data[i] == '>' {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated hex string at offset %d", pos)
}

// skipDict advances past a "<<...>>" dictionary starting at pos, including
// nested dictionaries, strings and comments.
func skipDict(data []byte, pos int) (int, error) {
	depth := 0
	i := pos
	for i < len(data) {
		switch {
		case i+1 < len(data) && data[i] == '<' && data[i+1] == '<':
			depth++
			i += 2
		case i+1 < len(data) && data[i] == '>' && data[i+1] == '>':
			depth--
			i += 2
			if depth == 0 {
				return i, nil
			}
		case data[i] == '(':
			next, err := skipLiteralString(data, i)
			if err != nil {
				return 0, err
			}
			i = next
		case data[i] == '<':
			next, err := skipHexString(data, i)
			if err != nil {
				return 0, err
			}
			i = next
		case data[i] == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			i++
		}
	}
	return 0, fmt.Errorf("unterminated dictionary at offset %d", pos)
}

// skipArray advances past a "[...]" array starting at pos.
func skipArray(data []byte, pos int) (int, error) {
	depth := 0
	i := pos
	for i < len(data) {
		switch {
		case data[i] == '[':
			depth++
			i++
		case data[i] == ']':
			depth--
			i++
			if depth == 0 {
				return i, nil
			}
		case i+1 < len(data) && data[i] == '<' && data[i+1] == '<':
			next, err := skipDict(data, i)
			if err != nil {
				return 0, err
			}
			i = next
		case data[i] == '(':
			next, err := skipLiteralString(data, i)
			if err != nil {
				return 0, err
			}
			i = next
		case data[i] == '<':
			next, err := skipHexString(data, i)
			if err != nil {
				return 0, err
			}
			i = next
		case data[i] == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			i++
		}
	}
	return 0, fmt.Errorf("unterminated array at offset %d", pos)
}

// skipInlineImage advances past a BI..ID..EI inline image whose BI operator
// starts at pos. The binary payload after ID is scanned for a whitespace
// delimited EI.
func skipInlineImage(data []byte, pos int) (int, error) {
	for i := pos; i+2 < len(data); i++ {
		if data[i] != 'E' || data[i+1] != 'I' {
			continue
		}
		if i > 0 && !isContentWhitespace(data[i-1]) {
			continue
		}
		if i+2 == len(data) || isContentWhitespace(data[i+2]) {
			return i + 2, nil
		}
	}
	return 0, fmt.Errorf("unterminated inline image at offset %d", pos)
}

// nextContentToken scans the next token at or after pos. Whitespace and
// comments are skipped. A zero-value token signals end of stream.
func nextContentToken(data []byte, pos int) (contentToken, int, error) {
	i := pos
	for i < len(data) && (isContentWhitespace(data[i]) || data[i] == '%') {
		if data[i] == '%' {
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
			continue
		}
		i++
	}
	if i == len(data) {
		return contentToken{}, len(data), nil
	}

	start := i
	var next int
	var err error

	switch {
	case data[i] == '(':
		next, err = skipLiteralString(data, i)
	case i+1 < len(data) && data[i] == '<' && data[i+1] == '<':
		next, err = skipDict(data, i)
	case data[i] == '<':
		next, err = skipHexString(data, i)
	case data[i] == '[':
		next, err = skipArray(data, i)
	case isContentDelimiter(data[i]):
		next = i + 1
	default:
		next = i
		for next < len(data) && !isContentWhitespace(data[next]) && !isContentDelimiter(data[next]) {
			next++
		}
	}
	if err != nil {
		return contentToken{}, 0, err
	}
	return contentToken{val: string(data[start:next]), start: start, end: next}, next, nil
}

// isContentOperator reports whether a token is an operator rather than an
// operand (number, string, name, array or dictionary).
func isContentOperator(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '/', '(', '<', '[':
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}

func lastOperandFloat(operands []contentToken) (float64, bool) {
	if len(operands) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(operands[len(operands)-1].val, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stripBandText removes text-showing operators (Tj, TJ, ', ") whose
// baseline lies inside the bottom band y < bandTop (PDF user space, origin
// at the bottom-left corner) from a decoded content stream. Positioning
// and state operators are kept so surviving text renders unchanged. The
// baseline is tracked through BT, Tm, Td, TD, TL and T*; Tm is taken as an
// absolute vertical position, relative moves accumulate.
func stripBandText(content []byte, bandTop float64) ([]byte, error) {
	var (
		out      []byte
		operands []contentToken
		inText   bool
		y        float64
		leading  float64
		emitted  int
	)

	pos := 0
	for pos < len(content) {
		tok, next, err := nextContentToken(content, pos)
		if err != nil {
			return nil, err
		}
		if tok.val == "" {
			break
		}
		pos = next

		if !isContentOperator(tok.val) {
			operands = append(operands, tok)
			continue
		}

		drop := false
		switch tok.val {
		case "BT":
			inText, y, leading = true, 0, 0
		case "ET":
			inText = false
		case "Tm":
			if v, ok := lastOperandFloat(operands); ok {
				y = v
			}
		case "Td":
			if v, ok := lastOperandFloat(operands); ok {
				y += v
			}
		case "TD":
			if v, ok := lastOperandFloat(operands); ok {
				leading = -v
				y += v
			}
		case "TL":
			if v, ok := lastOperandFloat(operands); ok {
				leading = v
			}
		case "T*":
			y -= leading
		case "Tj", "TJ":
			drop = inText && y < bandTop
		case "'", "\"":
			y -= leading
			drop = inText && y < bandTop
		case "BI":
			end, err := skipInlineImage(content, tok.start)
			if err != nil {
				return nil, err
			}
			pos = end
		}

		if drop {
			from := tok.start
			if len(operands) > 0 {
				from = operands[0].start
			}
			out = append(out, content[emitted:from]...)
			emitted = tok.end
		}
		operands = operands[:0]
	}

	out = append(out, content[emitted:]...)
	return out, nil
}
