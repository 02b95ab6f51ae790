package encode

import "github.com/jpatt/lc3asm/internal/ast"

var nzpMask = map[ast.Opcode]uint16{
	ast.BR: nzpNZP, ast.BRnzp: nzpNZP,
	ast.BRn: nzpN, ast.BRz: nzpZ, ast.BRp: nzpP,
	ast.BRzp: nzpZP, ast.BRnp: nzpNP, ast.BRnz: nzpNZ,
}

// encodeBranch handles every BR* variant: bits 11..9 carry the condition
// mask, bits 8..0 carry PCoffset9.
func (e *Encoder) encodeBranch(inst *ast.Instruction) (uint16, error) {
	mask := nzpMask[inst.Op]
	offset, err := e.pcOffsetOrLiteral(inst, inst.Operands[0], 9)
	if err != nil {
		return 0, err
	}
	return opBR<<opcodeShift | mask<<9 | offset, nil
}

// encodeJsr handles JSR: bit 11 = 1, PCoffset11 in bits 10..0.
func (e *Encoder) encodeJsr(inst *ast.Instruction) (uint16, error) {
	offset, err := e.pcOffsetOrLiteral(inst, inst.Operands[0], 11)
	if err != nil {
		return 0, err
	}
	return opJSR<<opcodeShift | 1<<11 | offset, nil
}

// encodeJsrr handles JSRR: bit 11 = 0, BaseR@6, low 6 bits clear.
func (e *Encoder) encodeJsrr(inst *ast.Instruction) (uint16, error) {
	base := inst.Operands[0].Reg
	return opJSR<<opcodeShift | uint16(base)<<6, nil
}

// encodeJmpRet handles JMP (BaseR from its operand) and RET (always R7).
func (e *Encoder) encodeJmpRet(inst *ast.Instruction, isRet bool) (uint16, error) {
	var base uint16 = 7
	if !isRet {
		base = uint16(inst.Operands[0].Reg)
	}
	return opJMP<<opcodeShift | base<<6, nil
}
