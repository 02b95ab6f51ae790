package encode

import "github.com/jpatt/lc3asm/internal/ast"

var memOpcode = map[ast.Opcode]uint16{
	ast.LD: opLD, ast.LDI: opLDI, ast.LEA: opLEA,
	ast.ST: opST, ast.STI: opSTI,
}

// encodeMemIndirect handles LD, LDI, LEA, ST, STI: DR/SR@9, PCoffset9 in
// bits 8..0, resolved against the operand's label.
func (e *Encoder) encodeMemIndirect(inst *ast.Instruction) (uint16, error) {
	reg := inst.Operands[0].Reg
	offset, err := e.pcOffsetOrLiteral(inst, inst.Operands[1], 9)
	if err != nil {
		return 0, err
	}
	return memOpcode[inst.Op]<<opcodeShift | uint16(reg)<<9 | offset, nil
}

// encodeMemBaseOffset handles LDR and STR: DR/SR@9, BaseR@6, offset6 in
// bits 5..0.
func (e *Encoder) encodeMemBaseOffset(inst *ast.Instruction) (uint16, error) {
	op := opLDR
	if inst.Op == ast.STR {
		op = opSTR
	}
	dr := inst.Operands[0].Reg
	base := inst.Operands[1].Reg
	offset, err := maskSigned(inst, int(inst.Operands[2].Int), 6)
	if err != nil {
		return 0, err
	}
	return op<<opcodeShift | uint16(dr)<<9 | uint16(base)<<6 | offset, nil
}
