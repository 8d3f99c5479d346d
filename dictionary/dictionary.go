/*
Copyright © 2026 the laminarSMOKE authors.
This file is part of laminarSMOKE.

laminarSMOKE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laminarSMOKE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laminarSMOKE.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package dictionary reads input files made of keyword dictionaries:
//
//	Dictionary CHEMKIN_PreProcessor
//	{
//		@Thermodynamics  thermo.CKT;   // comment
//		@Kinetics        "kinetics.CKI";
//		@ReactionTables  true;
//		@Comments
//		{
//			@Author  "A. Cuoci";
//		}
//	}
//
// Values are whitespace-separated words or quoted strings, and a keyword
// may hold a nested block instead of values.
package dictionary

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Position is a location in an input file.
type Position struct {
	Line, Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Entry is a single keyword with its values or its nested block.
type Entry struct {
	// Key is the keyword, including the leading '@'.
	Key string

	// Values holds the values. It is empty if the entry holds a block.
	Values []string

	// Block is the nested dictionary, or nil.
	Block *Dictionary

	Pos Position
}

// Dictionary is a named, ordered list of entries.
type Dictionary struct {
	Name    string
	Entries []*Entry
	Pos     Position
}

// Lookup returns the entry with the given key, or false if there is none.
func (d *Dictionary) Lookup(key string) (*Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Has returns whether the dictionary contains key.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Keys returns the keys of all entries in file order.
func (d *Dictionary) Keys() []string {
	k := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		k[i] = e.Key
	}
	return k
}

// ParseFile reads all dictionaries in the file at path.
func ParseFile(path string) ([]*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %v", err)
	}
	defer f.Close()
	return parse(f, path)
}

// Parse reads all dictionaries from r.
func Parse(r io.Reader) ([]*Dictionary, error) {
	return parse(r, "")
}

// Find returns the dictionary with the given name.
func Find(dicts []*Dictionary, name string) (*Dictionary, error) {
	for _, d := range dicts {
		if d.Name == name {
			return d, nil
		}
	}
	names := make([]string, len(dicts))
	for i, d := range dicts {
		names[i] = d.Name
	}
	return nil, fmt.Errorf("dictionary: no dictionary named %s; available dictionaries are [%s]", name, strings.Join(names, ", "))
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokLBrace
	tokRBrace
	tokSemi
)

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokString:
		return strconv.Quote(t.text)
	default:
		return fmt.Sprintf("'%s'", t.text)
	}
}

// lexer splits the input into words, quoted strings and the
// punctuation characters '{', '}' and ';'. Words are runs of
// characters other than white space, quotes and punctuation.
type lexer struct {
	src  []byte
	off  int
	pos  Position
	file string
	next *token
}

func (l *lexer) errorf(pos Position, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if l.file != "" {
		return fmt.Errorf("dictionary: %s:%s: %s", l.file, pos, msg)
	}
	return fmt.Errorf("dictionary: %s: %s", pos, msg)
}

// peekRune returns the rune at offset n bytes ahead of the current one.
func (l *lexer) peekRune(n int) rune {
	if l.off+n >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(l.src[l.off+n:])
	return r
}

func (l *lexer) eof() bool { return l.off >= len(l.src) }

// advance consumes one rune and returns it.
func (l *lexer) advance() rune {
	r, size := utf8.DecodeRune(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isPunct(r rune) bool {
	return r == '{' || r == '}' || r == ';' || r == '"'
}

// skip consumes white space and comments.
func (l *lexer) skip() error {
	for !l.eof() {
		r := l.peekRune(0)
		switch {
		case isSpace(r):
			l.advance()
		case r == '/' && l.peekRune(1) == '/':
			for !l.eof() && l.peekRune(0) != '\n' {
				l.advance()
			}
		case r == '/' && l.peekRune(1) == '*':
			start := l.pos
			l.advance()
			l.advance()
			for {
				if l.eof() {
					return l.errorf(start, "comment not terminated")
				}
				if l.peekRune(0) == '*' && l.peekRune(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (token, error) {
	if l.next == nil {
		t, err := l.scan()
		if err != nil {
			return t, err
		}
		l.next = &t
	}
	return *l.next, nil
}

// lex returns and consumes the next token.
func (l *lexer) lex() (token, error) {
	t, err := l.peek()
	l.next = nil
	return t, err
}

func (l *lexer) scan() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	pos, start := l.pos, l.off
	if l.eof() {
		return token{kind: tokEOF, pos: pos}, nil
	}
	switch r := l.advance(); r {
	case '{':
		return token{kind: tokLBrace, text: "{", pos: pos}, nil
	case '}':
		return token{kind: tokRBrace, text: "}", pos: pos}, nil
	case ';':
		return token{kind: tokSemi, text: ";", pos: pos}, nil
	case '"':
		var b strings.Builder
		for {
			if l.eof() || l.peekRune(0) == '\n' {
				return token{}, l.errorf(pos, "string not terminated")
			}
			c := l.advance()
			if c == '"' {
				break
			}
			if c == '\\' && !l.eof() {
				c = l.advance()
			}
			b.WriteRune(c)
		}
		return token{kind: tokString, text: b.String(), pos: pos}, nil
	}
	for !l.eof() {
		r := l.peekRune(0)
		if isSpace(r) || isPunct(r) {
			break
		}
		if r == '/' && (l.peekRune(1) == '/' || l.peekRune(1) == '*') {
			break
		}
		l.advance()
	}
	return token{kind: tokWord, text: string(l.src[start:l.off]), pos: pos}, nil
}
