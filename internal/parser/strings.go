package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeStringLiteral splits a Python string literal into its prefix-derived
// node type and its decoded value. F-string values are left undecoded.
func decodeStringLiteral(text string) (string, NodeType) {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	prefix := strings.ToLower(text[:i])
	rest := text[i:]

	nodeType := NodeString
	switch {
	case strings.ContainsRune(prefix, 'f'):
		nodeType = NodeFString
	case strings.ContainsRune(prefix, 'b'):
		nodeType = NodeBytes
	}

	quoteLen := 1
	if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
		quoteLen = 3
	}
	if len(rest) < 2*quoteLen {
		return "", nodeType
	}
	body := rest[quoteLen : len(rest)-quoteLen]

	if strings.ContainsRune(prefix, 'r') || nodeType == NodeFString {
		return body, nodeType
	}
	return unescape(body), nodeType
}

// unescape applies Python backslash escapes. Unknown escapes keep the
// backslash, as Python does.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}

		i++
		switch e := s[i]; e {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case 'x':
			i = writeCodePoint(&sb, s, i, 2)
		case 'u':
			i = writeCodePoint(&sb, s, i, 4)
		case 'U':
			i = writeCodePoint(&sb, s, i, 8)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i:end], 8, 32)
			sb.WriteRune(rune(v))
			i = end - 1
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

// writeCodePoint decodes a fixed-width hex escape whose marker sits at s[i]
// and returns the index of the last consumed byte
func writeCodePoint(sb *strings.Builder, s string, i, width int) int {
	if i+width >= len(s) {
		sb.WriteByte('\\')
		sb.WriteByte(s[i])
		return i
	}
	v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		sb.WriteByte('\\')
		sb.WriteByte(s[i])
		return i
	}
	sb.WriteRune(rune(v))
	return i + width
}
