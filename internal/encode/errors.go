package encode

import (
	"fmt"

	"github.com/jpatt/lc3asm/internal/ast"
)

// Kind classifies the handful of ways Encode can fail, so callers can map
// back to a diagnostic kind without parsing Message text.
type Kind int

const (
	Other Kind = iota
	UndefinedLabel
	OffsetOutOfRange
)

// Error carries the instruction context for an encoding failure, the way
// EncodingError does in a hand-written assembler's encoder package.
type Error struct {
	Instruction *ast.Instruction
	Kind        Kind
	Message     string
}

func (e *Error) Error() string {
	if e.Instruction == nil {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s: %s", e.Instruction.OpTok.Line, e.Instruction.Op, e.Message)
}

func newError(inst *ast.Instruction, format string, args ...any) *Error {
	return &Error{Instruction: inst, Kind: Other, Message: fmt.Sprintf(format, args...)}
}

func newKindError(inst *ast.Instruction, kind Kind, format string, args ...any) *Error {
	return &Error{Instruction: inst, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
