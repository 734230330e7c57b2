// Package project reduces a JSON value to a caller-specified subset of its
// fields.  Each field is named by a field path spec such as
//
//	personBasic.names[*].firstName
//
// parsed once into a list of tokens (a literal property name, the "[*]"
// wildcard, or a literal array index).  All specs write into a single
// shared target, so specs with a common prefix share the materialized
// sub-structure instead of duplicating it.
package project

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind discriminates the three kinds of spec tokens.
type TokenKind uint8

const (
	// Literal is a property name, e.g. "firstName".
	Literal TokenKind = iota
	// Wildcard is the "[*]" marker: every element of an array.
	Wildcard
	// Index is a "[n]" marker: exactly the element at position n.
	Index
)

// A Token is one parsed segment of a field path spec.
type Token struct {
	Kind TokenKind

	// Property name, for Literal tokens.
	Name string

	// Array position, for Index tokens.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case Literal:
		return t.Name
	case Wildcard:
		return "[*]"
	case Index:
		return "[" + strconv.Itoa(t.Pos) + "]"
	default:
		panic("invalid token kind")
	}
}

// A Spec is a parsed field path spec: an ordered list of tokens.
type Spec struct {
	Source string
	Tokens []Token
}

func (s Spec) String() string {
	return s.Source
}

// ErrEmptySpec is returned when parsing an empty field path spec.
var ErrEmptySpec = fmt.Errorf("empty field path spec")

// ParseSpec parses a field path spec into its token list.  Property names
// are separated by dots and any name may be followed by one or more
// bracketed markers:
//
//	"personid"            -> [personid]
//	"names[*].firstName"  -> [names * firstName]
//	"rows[0][*].id"       -> [rows 0 * id]
func ParseSpec(src string) (Spec, error) {
	if src == "" {
		return Spec{}, ErrEmptySpec
	}
	var tokens []Token
	for _, segment := range strings.Split(src, ".") {
		segTokens, err := parseSegment(segment)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid field path spec %q: %w", src, err)
		}
		tokens = append(tokens, segTokens...)
	}
	return Spec{Source: src, Tokens: tokens}, nil
}

// MustParseSpec is like ParseSpec but panics on error.  Intended for
// specs known valid at compile time.
func MustParseSpec(src string) Spec {
	spec, err := ParseSpec(src)
	if err != nil {
		panic(err)
	}
	return spec
}

// ParseSpecs parses a list of field path specs.
func ParseSpecs(srcs []string) ([]Spec, error) {
	specs := make([]Spec, len(srcs))
	for i, src := range srcs {
		spec, err := ParseSpec(src)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

// parseSegment parses one dot-separated segment: a property name optionally
// followed by bracketed markers, or bracketed markers alone.
func parseSegment(segment string) ([]Token, error) {
	if segment == "" {
		return nil, fmt.Errorf("empty segment")
	}
	var tokens []Token
	name, rest, hasBracket := strings.Cut(segment, "[")
	if name != "" {
		if strings.ContainsRune(name, ']') {
			return nil, fmt.Errorf("unexpected ']' in %q", segment)
		}
		tokens = append(tokens, Token{Kind: Literal, Name: name})
	}
	for hasBracket {
		var inner string
		var ok bool
		inner, rest, ok = strings.Cut(rest, "]")
		if !ok {
			return nil, fmt.Errorf("missing ']' in %q", segment)
		}
		tok, err := parseBracket(inner)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, segment)
		}
		tokens = append(tokens, tok)
		if rest == "" {
			break
		}
		rest, hasBracket = strings.CutPrefix(rest, "[")
		if !hasBracket {
			return nil, fmt.Errorf("unexpected %q after ']' in %q", rest, segment)
		}
	}
	return tokens, nil
}

func parseBracket(inner string) (Token, error) {
	if inner == "*" {
		return Token{Kind: Wildcard}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 {
		return Token{}, fmt.Errorf("bad array marker [%s]", inner)
	}
	return Token{Kind: Index, Pos: n}, nil
}
