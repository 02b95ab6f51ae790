package operand_test

import (
	"testing"

	"github.com/jpatt/lc3asm/internal/operand"
	"github.com/jpatt/lc3asm/internal/token"
)

func tok(kind token.Kind, begin, end int) token.Token {
	return token.Token{Kind: kind, Begin: begin, End: end, Line: 1, Col: 1}
}

func TestFromToken_Immediate(t *testing.T) {
	tests := []struct {
		source string
		want   int16
	}{
		{"#65535", -1},
		{"#-1", -1},
		{"xFFFF", -1},
		{"x0", 0},
		{"b1010", 10},
		{"#16", 16},
	}

	for _, tt := range tests {
		op, err := operand.FromToken(tok(token.Immediate, 0, len(tt.source)), tt.source)
		if err != nil {
			t.Fatalf("FromToken(%q): unexpected error %v", tt.source, err)
		}
		if op.Type != operand.Immediate || op.Int != tt.want {
			t.Errorf("FromToken(%q) = %+v, want Int=%d", tt.source, op, tt.want)
		}
	}
}

func TestFromToken_ImmediateOverflow(t *testing.T) {
	source := "#65536"
	_, err := operand.FromToken(tok(token.Immediate, 0, len(source)), source)
	if err == nil {
		t.Fatalf("expected overflow error")
	}
	oerr, ok := err.(*operand.Error)
	if !ok || oerr.Kind != operand.IntegerOverflow {
		t.Errorf("got %v, want IntegerOverflow", err)
	}
}

func TestFromToken_InvalidNumberForms(t *testing.T) {
	for _, source := range []string{"#", "x", "b", "#+", "#-", "x+", "x-", "b+", "b-"} {
		_, err := operand.FromToken(tok(token.Immediate, 0, len(source)), source)
		oerr, ok := err.(*operand.Error)
		if !ok || oerr.Kind != operand.InvalidNumber {
			t.Errorf("source %q: got %v, want InvalidNumber", source, err)
		}
	}
}

func TestFromToken_Register(t *testing.T) {
	source := "R3"
	op, err := operand.FromToken(tok(token.Register, 0, len(source)), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Type != operand.Register || op.Reg != 3 {
		t.Errorf("got %+v, want Reg=3", op)
	}
}

func TestFromToken_Label(t *testing.T) {
	source := "LOOP"
	op, err := operand.FromToken(tok(token.Label, 0, len(source)), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Type != operand.Label || op.Text != "LOOP" {
		t.Errorf("got %+v", op)
	}
}

func TestFromToken_String(t *testing.T) {
	source := `"Hi"`
	op, err := operand.FromToken(tok(token.String, 0, len(source)), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Type != operand.StringLiteral || op.Text != "Hi" {
		t.Errorf("got %+v", op)
	}
}

func TestFromToken_MissingQuote(t *testing.T) {
	source := `"Hi`
	_, err := operand.FromToken(tok(token.String, 0, len(source)), source)
	oerr, ok := err.(*operand.Error)
	if !ok || oerr.Kind != operand.MissingQuote {
		t.Errorf("got %v, want MissingQuote", err)
	}
}

func TestFromToken_InvalidTokenKind(t *testing.T) {
	source := "\n"
	_, err := operand.FromToken(tok(token.EOL, 0, 1), source)
	oerr, ok := err.(*operand.Error)
	if !ok || oerr.Kind != operand.InvalidTokenKind {
		t.Errorf("got %v, want InvalidTokenKind", err)
	}
}
