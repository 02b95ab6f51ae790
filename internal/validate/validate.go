// Package validate checks a parsed instruction sequence against the
// per-opcode operand rules before the assembler attempts to encode it.
package validate

import (
	"fmt"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/operand"
)

// immRange is an inclusive [lo, hi] bound on an Immediate/Number operand's
// folded int16 value.
type immRange struct {
	lo, hi int
}

// opcodeSpec is one opcode's accepted operand-type tuples, tried in order,
// plus the range an Immediate/Number operand must satisfy, if any.
type opcodeSpec struct {
	tuples [][]operand.Type
	rng    *immRange
}

var (
	regRegReg  = []operand.Type{operand.Register, operand.Register, operand.Register}
	regRegImm  = []operand.Type{operand.Register, operand.Register, operand.Immediate}
	labelOnly  = []operand.Type{operand.Label}
	immOnly    = []operand.Type{operand.Immediate}
	regOnly    = []operand.Type{operand.Register}
	regLabel   = []operand.Type{operand.Register, operand.Label}
	regReg     = []operand.Type{operand.Register, operand.Register}
	noOperand  = []operand.Type{}
	numberOnly = []operand.Type{operand.Number}
	stringOnly = []operand.Type{operand.StringLiteral}
)

var addAnd = opcodeSpec{
	tuples: [][]operand.Type{regRegReg, regRegImm},
	rng:    &immRange{-16, 15},
}

var branch = opcodeSpec{
	tuples: [][]operand.Type{labelOnly, immOnly},
	rng:    &immRange{-256, 255},
}

var jsr = opcodeSpec{
	tuples: [][]operand.Type{labelOnly, immOnly},
	rng:    &immRange{-1024, 1023},
}

var jumpLike = opcodeSpec{tuples: [][]operand.Type{regOnly}}

var memRegLabel = opcodeSpec{
	tuples: [][]operand.Type{regLabel},
	rng:    &immRange{-256, 255},
}

var memRegRegImm = opcodeSpec{
	tuples: [][]operand.Type{{operand.Register, operand.Register, operand.Immediate}},
	rng:    &immRange{-32, 31},
}

var not = opcodeSpec{tuples: [][]operand.Type{regReg}}

var noOperands = opcodeSpec{tuples: [][]operand.Type{noOperand}}

var trap = opcodeSpec{
	tuples: [][]operand.Type{immOnly},
	rng:    &immRange{0, 255},
}

var word16 = opcodeSpec{
	tuples: [][]operand.Type{immOnly},
	rng:    &immRange{-32768, 32767},
}

var blkw = opcodeSpec{
	tuples: [][]operand.Type{numberOnly},
	rng:    &immRange{-32768, 32767},
}

var stringz = opcodeSpec{tuples: [][]operand.Type{stringOnly}}

var specs = map[ast.Opcode]opcodeSpec{
	ast.ADD: addAnd, ast.AND: addAnd,

	ast.BR: branch, ast.BRn: branch, ast.BRz: branch, ast.BRp: branch,
	ast.BRzp: branch, ast.BRnp: branch, ast.BRnz: branch, ast.BRnzp: branch,

	ast.JSR: jsr,

	ast.JMP: jumpLike, ast.JSRR: jumpLike,

	ast.LD: memRegLabel, ast.LDI: memRegLabel, ast.LEA: memRegLabel,
	ast.ST: memRegLabel, ast.STI: memRegLabel,

	ast.LDR: memRegRegImm, ast.STR: memRegRegImm,

	ast.NOT: not,

	ast.RET: noOperands, ast.RTI: noOperands, ast.GETC: noOperands,
	ast.OUT: noOperands, ast.PUTS: noOperands, ast.IN: noOperands,
	ast.PUTSP: noOperands, ast.HALT: noOperands,

	ast.TRAP: trap,

	ast.ORIG: word16, ast.FILL: word16,

	ast.BLKW: blkw,

	ast.STRINGZ: stringz,
}

// Validate checks instructions against spec.md §4.4's rules, reporting every
// violation to sink in source order. It returns true iff the sequence is
// fully valid.
func Validate(instructions []*ast.Instruction, sink diag.Sink) bool {
	ok := true

	if len(instructions) == 0 || instructions[0].Op != ast.ORIG {
		line, col := positionOf(instructions, 0)
		emit(sink, diag.KindOrigMissing, line, col, "program must begin with .ORIG")
		ok = false
	}

	origCount := 0
	for _, inst := range instructions {
		if inst.Op == ast.ORIG {
			origCount++
			if origCount > 1 {
				emit(sink, diag.KindOrigDuplicated, inst.OpTok.Line, inst.OpTok.Col, "duplicate .ORIG")
				ok = false
			}
		}

		if !validateLabelPermission(inst, sink) {
			ok = false
		}
		if !validateOperands(inst, sink) {
			ok = false
		}
	}

	return ok
}

func validateLabelPermission(inst *ast.Instruction, sink diag.Sink) bool {
	if (inst.Op == ast.ORIG || inst.Op == ast.END) && inst.Label != "" {
		emit(sink, diag.KindInstructionNoLabel, inst.OpTok.Line, inst.OpTok.Col,
			fmt.Sprintf("%s must not carry a label", inst.Op))
		return false
	}
	return true
}

func validateOperands(inst *ast.Instruction, sink diag.Sink) bool {
	spec, known := specs[inst.Op]
	if !known {
		// .END carries no operand spec of its own.
		return true
	}

	matched, lastTried := matchTuple(spec.tuples, inst.Operands)
	if matched == nil {
		if len(lastTried) != len(inst.Operands) {
			emit(sink, diag.KindOperandArityMismatch, inst.OpTok.Line, inst.OpTok.Col,
				fmt.Sprintf("%s expects %d operand(s), got %d", inst.Op, len(lastTried), len(inst.Operands)))
		} else {
			emit(sink, diag.KindOperandTypeMismatch, inst.OpTok.Line, inst.OpTok.Col,
				fmt.Sprintf("%s: operand types do not match any accepted form", inst.Op))
		}
		return false
	}

	if spec.rng != nil {
		for _, o := range inst.Operands {
			if o.Type != operand.Immediate && o.Type != operand.Number {
				continue
			}
			v := int(o.Int)
			if v < spec.rng.lo || v > spec.rng.hi {
				emit(sink, diag.KindImmediateOutOfRange, o.Pos.Line, o.Pos.Col,
					fmt.Sprintf("immediate %d out of range [%d, %d]", v, spec.rng.lo, spec.rng.hi))
				return false
			}
			break
		}
	}

	return true
}

// matchTuple returns the first tuple whose types match operands exactly, or
// nil plus the last tuple tried (for error reporting) if none match.
func matchTuple(tuples [][]operand.Type, operands []operand.Operand) ([]operand.Type, []operand.Type) {
	var last []operand.Type
	for _, tuple := range tuples {
		last = tuple
		if len(tuple) != len(operands) {
			continue
		}
		match := true
		for i, t := range tuple {
			if operands[i].Type != t {
				match = false
				break
			}
		}
		if match {
			return tuple, last
		}
	}
	return nil, last
}

func positionOf(instructions []*ast.Instruction, index int) (int, int) {
	if index < len(instructions) {
		return instructions[index].OpTok.Line, instructions[index].OpTok.Col
	}
	return 0, 0
}

func emit(sink diag.Sink, kind diag.Kind, line, col int, message string) {
	if sink == nil {
		return
	}
	sink.Emit(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     kind,
		Pos:      diag.Position{Line: line, Column: col},
		Message:  message,
	})
}
