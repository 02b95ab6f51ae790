package encode

import (
	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/operand"
)

// encodeAddAnd handles ADD and AND: DR@9, SR1@6, then either a register
// SR2@0 (bits 5..3 clear) or a 5-bit immediate with bit 5 set.
func (e *Encoder) encodeAddAnd(inst *ast.Instruction) (uint16, error) {
	op := opADD
	if inst.Op == ast.AND {
		op = opAND
	}

	dr := inst.Operands[0].Reg
	sr1 := inst.Operands[1].Reg
	word := op<<opcodeShift | uint16(dr)<<9 | uint16(sr1)<<6

	third := inst.Operands[2]
	if third.Type == operand.Register {
		return word | uint16(third.Reg), nil
	}

	imm, err := maskSigned(inst, int(third.Int), 5)
	if err != nil {
		return 0, err
	}
	return word | 1<<5 | imm, nil
}

// encodeNot handles NOT: DR@9, SR@6, low 6 bits all set.
func (e *Encoder) encodeNot(inst *ast.Instruction) (uint16, error) {
	dr := inst.Operands[0].Reg
	sr := inst.Operands[1].Reg
	return opNOT<<opcodeShift | uint16(dr)<<9 | uint16(sr)<<6 | 0x3F, nil
}
