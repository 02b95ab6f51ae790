package encode

import "github.com/jpatt/lc3asm/internal/ast"

var namedTrapVector = map[ast.Opcode]uint16{
	ast.GETC: trapGETC, ast.OUT: trapOUT, ast.PUTS: trapPUTS,
	ast.IN: trapIN, ast.PUTSP: trapPUTSP, ast.HALT: trapHALT,
}

// encodeTrap handles TRAP (explicit vector operand) and the named trap
// mnemonics (GETC, OUT, PUTS, IN, PUTSP, HALT), which carry their
// trapvect8 implicitly.
func (e *Encoder) encodeTrap(inst *ast.Instruction) (uint16, error) {
	if inst.Op == ast.TRAP {
		vect := uint16(inst.Operands[0].Int)
		return opTRAP<<opcodeShift | vect&0xFF, nil
	}
	return opTRAP<<opcodeShift | namedTrapVector[inst.Op], nil
}
