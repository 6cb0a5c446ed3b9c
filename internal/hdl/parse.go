// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and parser for pin specifications and
// connection strings.
//
package hdl

import (
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var tokNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value string
}

func (i Item) String() string {
	switch i.Type {
	case Ident, Raw:
		return tokNames[i.Type] + " " + strconv.Quote(i.Value)
	case Int:
		return tokNames[i.Type] + " " + i.Value
	}
	return tokNames[i.Type]
}

// Lexer splits an input string into tokens.
//
type Lexer struct {
	in  []rune
	pos int
	eof bool
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{in: []rune(input)}
}

// Lex returns the next token. Once the end of input or an invalid character has
// been reached, it only returns EOF.
//
func (l *Lexer) Lex() Item {
	for !l.eof && l.pos < len(l.in) && unicode.IsSpace(l.in[l.pos]) {
		l.pos++
	}
	if l.eof || l.pos >= len(l.in) {
		l.eof = true
		return Item{Type: EOF, Pos: l.pos}
	}
	start := l.pos
	r := l.in[l.pos]
	l.pos++
	switch {
	case unicode.IsLetter(r) || r == '_':
		for l.pos < len(l.in) && (unicode.IsLetter(l.in[l.pos]) || unicode.IsDigit(l.in[l.pos]) || l.in[l.pos] == '_') {
			l.pos++
		}
		return Item{Type: Ident, Pos: start, Value: string(l.in[start:l.pos])}
	case '0' <= r && r <= '9':
		for l.pos < len(l.in) && '0' <= l.in[l.pos] && l.in[l.pos] <= '9' {
			l.pos++
		}
		return Item{Type: Int, Pos: start, Value: string(l.in[start:l.pos])}
	case r == '[':
		return Item{Type: BracketOpen, Pos: start, Value: "["}
	case r == ']':
		return Item{Type: BracketClose, Pos: start, Value: "]"}
	case r == ',':
		return Item{Type: Comma, Pos: start, Value: ","}
	case r == '=':
		return Item{Type: Equal, Pos: start, Value: "="}
	case r == '.' && l.pos < len(l.in) && l.in[l.pos] == '.':
		l.pos++
		return Item{Type: Range, Pos: start, Value: ".."}
	}
	l.eof = true
	return Item{Type: Raw, Pos: start, Value: string(r)}
}

// Pin is a simple pin name
//
type Pin struct {
	Name string
	Pos  int
}

// PinIndex is an indexed pin p[index]
//
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
//
type PinRange struct {
	Pin
	Start int
	End   int
}

// PinAssignment is a part pin to chip pin assignment. pp=pc
//
type PinAssignment struct {
	LHS interface{}
	RHS interface{}
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	done  bool
}

// Next returns the next item in the input stream, nil at the end of input.
// It only recognizes pin names followed by an index or range and separated by
// commas. allowConns specifies if connection strings (pp=pc) are supported.
//
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.done {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
		p.i = p.l.Lex()
		if p.i.Type == EOF {
			p.done = true
			return nil, nil
		}
	} else {
		p.i = p.l.Lex()
	}

	pin, err := p.getPin()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		fallthrough
	case Comma:
		return pin, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.done = true
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	pin2, err := p.getPin()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		fallthrough
	case Comma:
		return PinAssignment{pin, pin2}, nil
	}

	p.done = true
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name")
	}
	pin := Pin{p.i.Value, p.i.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	start, err := p.getInt("'['")
	if err != nil {
		return nil, err
	}
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if end, err = p.getInt("'..'"); err != nil {
			return nil, err
		}
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func (p *Parser) getInt(after string) (int, error) {
	if p.i.Type != Int {
		return 0, parseError(p.Input, p.i.Pos, "integer value expected after "+after)
	}
	n, err := strconv.Atoi(p.i.Value)
	if err != nil {
		return 0, parseError(p.Input, p.i.Pos, "integer value out of range: "+p.i.Value)
	}
	return n, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
