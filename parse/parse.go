// Package parse turns skein source text into document nodes.
package parse

import (
	"fmt"

	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/ir"
	"github.com/skein-format/go-skein/token"
)

// Parse parses a single document from d. The document is fully
// materialized; there is no incremental mode.
func Parse(d []byte, opts ...ParseOption) (ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(d)
	if err != nil {
		if tErr, ok := err.(*token.Error); ok {
			return nil, posError(d, tErr.Off, tErr.Msg)
		}
		return nil, err
	}
	p := &parser{d: d, toks: toks, opts: pOpts}
	n, err := p.value(ir.Path{})
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != token.EOF {
		return nil, posError(d, tok.Off, fmt.Sprintf("unexpected %s after document", tok.Kind))
	}
	if debug.Parse() {
		debug.Logf("parsed document:\n%s\n", n)
	}
	return n, nil
}

type parser struct {
	d    []byte
	toks []token.Token
	i    int
	opts *parseOpts
}

func (p *parser) peek() token.Token {
	return p.toks[p.i]
}

func (p *parser) next() token.Token {
	tok := p.toks[p.i]
	if tok.Kind != token.EOF {
		p.i++
	}
	return tok
}

func (p *parser) errf(tok token.Token, msg string, args ...any) error {
	return posError(p.d, tok.Off, fmt.Sprintf(msg, args...))
}

func (p *parser) track(n ir.Node, tok token.Token) ir.Node {
	if p.opts.positions != nil && n != nil {
		line, col := token.LineCol(p.d, tok.Off)
		p.opts.positions[n] = Pos{Line: line, Col: col}
	}
	return n
}

// value := tag? bare
func (p *parser) value(at ir.Path) (ir.Node, error) {
	tok := p.peek()
	if tok.Kind != token.Tag {
		return p.bare(at)
	}
	p.next()
	if err := ir.CheckTag(tok.Text); err != nil {
		return nil, p.errf(tok, "bad tag %q: %v", tok.Text, err)
	}
	if p.peek().Kind == token.Tag {
		return nil, p.errf(p.peek(), "a value may carry only one tag")
	}
	inner, err := p.bare(at)
	if err != nil {
		return nil, err
	}
	return p.track(&ir.Tagged{Tag: tok.Text, Inner: inner, At: at}, tok), nil
}

// bare := "null" | scalar | list | map
func (p *parser) bare(at ir.Path) (ir.Node, error) {
	tok := p.next()
	switch tok.Kind {
	case token.Null:
		return p.track(&ir.Null{At: at}, tok), nil
	case token.Scalar, token.String:
		return p.track(&ir.Scalar{Content: tok.Text, At: at}, tok), nil
	case token.LBracket:
		n, err := p.list(at)
		if err != nil {
			return nil, err
		}
		return p.track(n, tok), nil
	case token.LBrace:
		n, err := p.mapping(at)
		if err != nil {
			return nil, err
		}
		return p.track(n, tok), nil
	case token.EOF:
		return nil, p.errf(tok, "unexpected end of document")
	default:
		return nil, p.errf(tok, "unexpected %s, expected a value", tok.Kind)
	}
}

// list := "[" (value ("," value)*)? ","? "]"
func (p *parser) list(at ir.Path) (ir.Node, error) {
	res := &ir.List{At: at}
	for {
		if p.peek().Kind == token.RBracket {
			p.next()
			return res, nil
		}
		item, err := p.value(at.Index(len(res.Items)))
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, item)
		switch tok := p.peek(); tok.Kind {
		case token.Comma:
			p.next()
		case token.RBracket:
		default:
			return nil, p.errf(tok, "unexpected %s in list, expected ',' or ']'", tok.Kind)
		}
	}
}

// map := "{" (entry ("," entry)*)? ","? "}"
// entry := value ":" value
func (p *parser) mapping(at ir.Path) (ir.Node, error) {
	res := &ir.Map{At: at}
	for {
		if p.peek().Kind == token.RBrace {
			p.next()
			return res, nil
		}
		key, err := p.value(at)
		if err != nil {
			return nil, err
		}
		tok := p.next()
		if tok.Kind != token.Colon {
			return nil, p.errf(tok, "unexpected %s in map entry, expected ':'", tok.Kind)
		}
		valAt := at
		if s, ok := key.(*ir.Scalar); ok {
			valAt = at.Key(s.Content)
		}
		val, err := p.value(valAt)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, ir.KeyVal{Key: key, Val: val})
		switch tok := p.peek(); tok.Kind {
		case token.Comma:
			p.next()
		case token.RBrace:
		default:
			return nil, p.errf(tok, "unexpected %s in map, expected ',' or '}'", tok.Kind)
		}
	}
}
