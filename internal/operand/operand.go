// Package operand builds typed Operand values from lexer tokens and
// reports the handful of ways that construction can fail.
package operand

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jpatt/lc3asm/internal/token"
)

// Type is the closed set of operand kinds.
type Type int

const (
	Register Type = iota
	Immediate
	Number
	Label
	StringLiteral
)

var typeNames = [...]string{"Register", "Immediate", "Number", "Label", "StringLiteral"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Operand is a tagged value produced from a single token.
type Operand struct {
	Type Type
	Reg  uint8  // valid when Type == Register, in 0..=7
	Int  int16  // valid when Type == Immediate or Type == Number
	Text string // valid when Type == Label or Type == StringLiteral
	Pos  token.Token
}

// ErrorKind enumerates the ways operand construction can fail.
type ErrorKind int

const (
	InvalidTokenKind ErrorKind = iota
	InvalidNumber
	IntegerOverflow
	MissingQuote
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidTokenKind:
		return "InvalidTokenKind"
	case InvalidNumber:
		return "InvalidNumber"
	case IntegerOverflow:
		return "IntegerOverflow"
	case MissingQuote:
		return "MissingQuote"
	default:
		return "Unknown"
	}
}

// Error reports a failure to construct an Operand from a token.
type Error struct {
	Kind ErrorKind
	Tok  token.Token
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Text)
}

// FromToken builds an Operand from tok, whose text is the slice of source
// it denotes. It returns an *Error (never a plain error) on failure, per
// the error kinds spec.md §4.2 names.
func FromToken(tok token.Token, source string) (Operand, error) {
	text := tok.Text(source)

	switch tok.Kind {
	case token.Register:
		// The lexer only ever classifies "R" + one digit 0-7 as Register.
		return Operand{Type: Register, Reg: text[1] - '0', Pos: tok}, nil

	case token.Label:
		return Operand{Type: Label, Text: text, Pos: tok}, nil

	case token.Number:
		v, kind, ok := decodeInteger(text, 10)
		if !ok {
			return Operand{}, &Error{Kind: kind, Tok: tok, Text: text}
		}
		return Operand{Type: Number, Int: v, Pos: tok}, nil

	case token.Immediate:
		v, kind, ok := decodeImmediate(text)
		if !ok {
			return Operand{}, &Error{Kind: kind, Tok: tok, Text: text}
		}
		return Operand{Type: Immediate, Int: v, Pos: tok}, nil

	case token.String:
		if len(text) < 2 || text[len(text)-1] != '"' {
			return Operand{}, &Error{Kind: MissingQuote, Tok: tok, Text: text}
		}
		return Operand{Type: StringLiteral, Text: text[1 : len(text)-1], Pos: tok}, nil

	default:
		return Operand{}, &Error{Kind: InvalidTokenKind, Tok: tok, Text: text}
	}
}

// decodeImmediate dispatches a lexer-classified Immediate slice (#dec,
// xhex, or bbin) to the matching base.
func decodeImmediate(text string) (int16, ErrorKind, bool) {
	if len(text) == 0 {
		return 0, InvalidNumber, false
	}

	switch text[0] {
	case '#':
		return decodeInteger(text[1:], 10)
	case 'x':
		return decodeInteger(text[1:], 16)
	case 'b':
		return decodeInteger(text[1:], 2)
	default:
		return 0, InvalidNumber, false
	}
}

// decodeInteger parses digits (optionally signed) in the given base and
// folds the result into the signed 16-bit domain per spec.md §4.2: values
// in [-32768, 65535] are accepted, with [32768, 65535] reinterpreted as
// their two's-complement int16. Anything else overflows. The malformed
// bodyless forms spec.md §4.2 lists — a bare prefix, a bare sign, or a
// prefix followed only by a sign — all fall out of the two empty-digits
// checks below.
func decodeInteger(digits string, base int) (int16, ErrorKind, bool) {
	if digits == "" {
		return 0, InvalidNumber, false
	}

	neg := false
	body := digits
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		neg = true
		body = body[1:]
	}
	if body == "" {
		return 0, InvalidNumber, false
	}

	mag, err := strconv.ParseUint(body, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, IntegerOverflow, false
	}
	if err != nil {
		return 0, InvalidNumber, false
	}
	if mag > 1<<16 {
		return 0, IntegerOverflow, false
	}

	n := int64(mag)
	if neg {
		n = -n
	}

	if n < -32768 || n > 65535 {
		return 0, IntegerOverflow, false
	}
	if n >= 32768 {
		n -= 65536
	}
	return int16(n), 0, true
}
