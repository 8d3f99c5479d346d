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

package dictionary

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
)

// keyword that opens a dictionary.
const dictionaryKeyword = "Dictionary"

func parse(r io.Reader, file string) ([]*Dictionary, error) {
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %v", err)
	}
	l := &lexer{src: src, pos: Position{Line: 1, Column: 1}, file: file}
	var dicts []*Dictionary
	names := make(map[string]Position)
	for {
		t, err := l.lex()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF {
			break
		}
		if t.kind != tokWord || t.text != dictionaryKeyword {
			return nil, l.errorf(t.pos, "expected '%s', found %s", dictionaryKeyword, t)
		}
		name, err := l.lex()
		if err != nil {
			return nil, err
		}
		if name.kind != tokWord && name.kind != tokString {
			return nil, l.errorf(name.pos, "expected dictionary name, found %s", name)
		}
		if p, ok := names[name.text]; ok {
			return nil, l.errorf(name.pos, "dictionary %s is already defined at %s", name.text, p)
		}
		names[name.text] = t.pos
		d, err := parseBlock(l, name.text, t.pos)
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, d)
	}
	if len(dicts) == 0 {
		return nil, l.errorf(l.pos, "no dictionaries found")
	}
	return dicts, nil
}

// parseBlock parses "{ entries }".
func parseBlock(l *lexer, name string, pos Position) (*Dictionary, error) {
	open, err := l.lex()
	if err != nil {
		return nil, err
	}
	if open.kind != tokLBrace {
		return nil, l.errorf(open.pos, "expected '{', found %s", open)
	}
	d := &Dictionary{Name: name, Pos: pos}
	for {
		t, err := l.lex()
		if err != nil {
			return nil, err
		}
		switch {
		case t.kind == tokRBrace:
			return d, nil
		case t.kind == tokEOF:
			return nil, l.errorf(open.pos, "block %s is not closed", name)
		case t.kind == tokSemi:
			continue
		case t.kind != tokWord || !strings.HasPrefix(t.text, "@") || len(t.text) < 2:
			return nil, l.errorf(t.pos, "expected keyword starting with '@', found %s", t)
		}
		if e, ok := d.Lookup(t.text); ok {
			return nil, l.errorf(t.pos, "keyword %s is already defined at %s", t.text, e.Pos)
		}
		e, err := parseEntry(l, t)
		if err != nil {
			return nil, err
		}
		d.Entries = append(d.Entries, e)
	}
}

// parseEntry parses the values or the block that follow a keyword.
func parseEntry(l *lexer, key token) (*Entry, error) {
	e := &Entry{Key: key.text, Pos: key.pos}
	next, err := l.peek()
	if err != nil {
		return nil, err
	}
	if next.kind == tokLBrace {
		e.Block, err = parseBlock(l, key.text, key.pos)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	for {
		t, err := l.lex()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokSemi:
			return e, nil
		case tokWord, tokString:
			if t.kind == tokWord && strings.HasPrefix(t.text, "@") {
				return nil, l.errorf(t.pos, "missing ';' after the values of %s", key.text)
			}
			e.Values = append(e.Values, t.text)
		default:
			return nil, l.errorf(t.pos, "missing ';' after the values of %s", key.text)
		}
	}
}
