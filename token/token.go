// Package token splits skein source text into tokens.
package token

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	EOF Kind = iota
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Null
	Scalar // bareword
	String // quoted
	Tag    // !name
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case String:
		return "string"
	case Tag:
		return "tag"
	}
	return fmt.Sprintf("<err: %d is not a token kind>", int(k))
}

// Token is a single lexical element. Text holds the decoded value for
// Scalar, String and Tag tokens (quotes and escapes resolved, '!' stripped).
type Token struct {
	Kind Kind
	Text string
	Off  int // byte offset in the source
}

// Error is a tokenization error at a byte offset.
type Error struct {
	Off int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Off, e.Msg)
}

// LineCol maps a byte offset in d to 1-based line and column numbers.
func LineCol(d []byte, off int) (int, int) {
	line, col := 1, 1
	for i := 0; i < off && i < len(d); i++ {
		if d[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// Tokenize splits d into tokens. Comments ('#' to end of line) and
// whitespace are skipped. The returned slice always ends with an EOF token.
func Tokenize(d []byte) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(d)
	for i < n {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '#':
			for i < n && d[i] != '\n' {
				i++
			}
		case c == '[':
			toks = append(toks, Token{Kind: LBracket, Off: i})
			i++
		case c == ']':
			toks = append(toks, Token{Kind: RBracket, Off: i})
			i++
		case c == '{':
			toks = append(toks, Token{Kind: LBrace, Off: i})
			i++
		case c == '}':
			toks = append(toks, Token{Kind: RBrace, Off: i})
			i++
		case c == ',':
			toks = append(toks, Token{Kind: Comma, Off: i})
			i++
		case c == ':':
			toks = append(toks, Token{Kind: Colon, Off: i})
			i++
		case c == '"':
			tok, next, err := quoted(d, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case c == '!':
			tok, next, err := tag(d, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case bareChar(c):
			start := i
			for i < n && bareChar(d[i]) {
				i++
			}
			text := string(d[start:i])
			kind := Scalar
			if text == "null" {
				kind = Null
			}
			toks = append(toks, Token{Kind: kind, Text: text, Off: start})
		default:
			return nil, &Error{Off: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, Token{Kind: EOF, Off: n})
	return toks, nil
}

// bareChar reports whether c may appear in an unquoted scalar.
func bareChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_' || c == '+' || c == '/' || c == '*' || c == '@' || c == '=':
		return true
	}
	return false
}

// Bare reports whether s can be encoded as a bareword scalar without
// changing meaning when read back.
func Bare(s string) bool {
	if s == "" || s == "null" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !bareChar(s[i]) {
			return false
		}
	}
	return true
}

func quoted(d []byte, start int) (Token, int, error) {
	i := start + 1
	n := len(d)
	for i < n {
		switch d[i] {
		case '\\':
			i += 2
		case '"':
			raw := string(d[start : i+1])
			text, err := strconv.Unquote(raw)
			if err != nil {
				return Token{}, 0, &Error{Off: start, Msg: fmt.Sprintf("bad string literal: %v", err)}
			}
			return Token{Kind: String, Text: text, Off: start}, i + 1, nil
		case '\n':
			return Token{}, 0, &Error{Off: start, Msg: "unterminated string"}
		default:
			i++
		}
	}
	return Token{}, 0, &Error{Off: start, Msg: "unterminated string"}
}

func tag(d []byte, start int) (Token, int, error) {
	i := start + 1
	n := len(d)
	for i < n && tagChar(d[i]) {
		i++
	}
	if i == start+1 {
		return Token{}, 0, &Error{Off: start, Msg: "empty tag"}
	}
	return Token{Kind: Tag, Text: string(d[start+1 : i]), Off: start}, i, nil
}

func tagChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_' || c == '/':
		return true
	}
	return false
}
