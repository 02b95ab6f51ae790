// Package encode turns a validated instruction into its LC-3 machine words.
package encode

import (
	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/operand"
)

// SymbolLookup resolves a label to its assembled address. The assembler's
// symbol table implements this after pass 2a completes.
type SymbolLookup interface {
	Resolve(label string) (uint16, bool)
}

// Encoder produces the machine words for one validated instruction at a
// time. It holds no mutable state of its own; every input it needs (the
// instruction's assigned address, the symbol table) is already resolved by
// the time pass 2b runs.
type Encoder struct {
	Symbols SymbolLookup
}

// New returns an Encoder resolving labels against symbols.
func New(symbols SymbolLookup) *Encoder {
	return &Encoder{Symbols: symbols}
}

// Encode produces the zero or more words inst contributes to the program
// image. Pseudo-ops other than .ORIG/.END emit data words; every real
// opcode emits exactly one.
func (e *Encoder) Encode(inst *ast.Instruction) ([]uint16, error) {
	switch inst.Op {
	case ast.ORIG, ast.END:
		return nil, nil

	case ast.FILL:
		return []uint16{uint16(inst.Operands[0].Int)}, nil

	case ast.BLKW:
		count := int(inst.Operands[0].Int)
		if count < 0 {
			return nil, newError(inst, ".BLKW count must not be negative, got %d", count)
		}
		return make([]uint16, count), nil

	case ast.STRINGZ:
		return encodeStringz(inst.Operands[0].Text), nil

	case ast.ADD, ast.AND:
		w, err := e.encodeAddAnd(inst)
		return oneWord(w, err)

	case ast.NOT:
		w, err := e.encodeNot(inst)
		return oneWord(w, err)

	case ast.BR, ast.BRn, ast.BRz, ast.BRp, ast.BRzp, ast.BRnp, ast.BRnz, ast.BRnzp:
		w, err := e.encodeBranch(inst)
		return oneWord(w, err)

	case ast.JMP:
		w, err := e.encodeJmpRet(inst, false)
		return oneWord(w, err)

	case ast.RET:
		w, err := e.encodeJmpRet(inst, true)
		return oneWord(w, err)

	case ast.JSR:
		w, err := e.encodeJsr(inst)
		return oneWord(w, err)

	case ast.JSRR:
		w, err := e.encodeJsrr(inst)
		return oneWord(w, err)

	case ast.LD, ast.LDI, ast.LEA, ast.ST, ast.STI:
		w, err := e.encodeMemIndirect(inst)
		return oneWord(w, err)

	case ast.LDR, ast.STR:
		w, err := e.encodeMemBaseOffset(inst)
		return oneWord(w, err)

	case ast.RTI:
		return []uint16{opRTI << opcodeShift}, nil

	case ast.TRAP, ast.GETC, ast.OUT, ast.PUTS, ast.IN, ast.PUTSP, ast.HALT:
		w, err := e.encodeTrap(inst)
		return oneWord(w, err)

	default:
		return nil, newError(inst, "no encoding defined for %s", inst.Op)
	}
}

func oneWord(w uint16, err error) ([]uint16, error) {
	if err != nil {
		return nil, err
	}
	return []uint16{w}, nil
}

func encodeStringz(s string) []uint16 {
	words := make([]uint16, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		words = append(words, uint16(s[i]))
	}
	return append(words, 0)
}

// resolveLabel returns the resolved address of a Label operand, for a
// PC-relative offset computation, or an UndefinedLabel error. Immediate
// operands never reach it: pcOffsetOrLiteral uses them as the offset itself.
func (e *Encoder) resolveLabel(inst *ast.Instruction, o operand.Operand) (uint16, error) {
	addr, ok := e.Symbols.Resolve(o.Text)
	if !ok {
		return 0, newKindError(inst, UndefinedLabel, "undefined label %q", o.Text)
	}
	return addr, nil
}

// pcOffsetOrLiteral computes the bits-field value for an operand that may
// be either a Label (PC-relative, per spec.md §4.5) or a bare Immediate
// (used directly as the already-relative field value, uniformly across
// every BR* variant and JSR — the reference implementation special-cased
// BRz to skip the PC-relative subtraction for immediates; that asymmetry
// is not reproduced here).
func (e *Encoder) pcOffsetOrLiteral(inst *ast.Instruction, o operand.Operand, bits int) (uint16, error) {
	switch o.Type {
	case operand.Label:
		target, err := e.resolveLabel(inst, o)
		if err != nil {
			return 0, err
		}
		offset := int(target) - int(inst.Address) - 1
		return maskSigned(inst, offset, bits)
	case operand.Immediate:
		return maskSigned(inst, int(o.Int), bits)
	default:
		return 0, newError(inst, "operand must be a label or immediate")
	}
}

// maskSigned checks offset fits in a signed bits-wide field and returns its
// low bits-wide two's-complement bit pattern.
func maskSigned(inst *ast.Instruction, offset, bits int) (uint16, error) {
	lo := -(1 << (bits - 1))
	hi := (1 << (bits - 1)) - 1
	if offset < lo || offset > hi {
		return 0, newKindError(inst, OffsetOutOfRange, "offset %d out of range [%d, %d]", offset, lo, hi)
	}
	mask := uint16((1 << bits) - 1)
	return uint16(offset) & mask, nil
}
