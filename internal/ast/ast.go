// Package ast holds the Opcode and Instruction types the parser builds and
// the validator and assembler consume.
package ast

import (
	"fmt"
	"strings"

	"github.com/jpatt/lc3asm/internal/operand"
	"github.com/jpatt/lc3asm/internal/token"
)

// Opcode is the closed set of real mnemonics and pseudo-ops, plus the
// UnknownOp sentinel the parser returns on unrecoverable failure.
type Opcode int

const (
	UnknownOp Opcode = iota

	ADD
	AND
	BR
	BRn
	BRz
	BRp
	BRzp
	BRnp
	BRnz
	BRnzp
	JMP
	JSR
	JSRR
	LD
	LDI
	LDR
	LEA
	NOT
	RET
	RTI
	ST
	STI
	STR
	TRAP
	GETC
	OUT
	PUTS
	IN
	PUTSP
	HALT

	ORIG
	FILL
	BLKW
	STRINGZ
	END
)

var opcodeNames = map[Opcode]string{
	UnknownOp: "UNKNOWN",
	ADD:       "ADD", AND: "AND",
	BR: "BR", BRn: "BRn", BRz: "BRz", BRp: "BRp",
	BRzp: "BRzp", BRnp: "BRnp", BRnz: "BRnz", BRnzp: "BRnzp",
	JMP: "JMP", JSR: "JSR", JSRR: "JSRR",
	LD: "LD", LDI: "LDI", LDR: "LDR", LEA: "LEA",
	NOT: "NOT", RET: "RET", RTI: "RTI",
	ST: "ST", STI: "STI", STR: "STR",
	TRAP: "TRAP", GETC: "GETC", OUT: "OUT", PUTS: "PUTS",
	IN: "IN", PUTSP: "PUTSP", HALT: "HALT",
	ORIG: ".ORIG", FILL: ".FILL", BLKW: ".BLKW", STRINGZ: ".STRINGZ", END: ".END",
}

// mnemonicToOpcode inverts opcodeNames for the real mnemonics (the lexer's
// Opcode token kind) and the pseudo spellings (the lexer's Pseudo token
// kind, dot included).
var mnemonicToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		if op != UnknownOp {
			m[name] = op
		}
	}
	return m
}()

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// Lookup resolves a case-sensitive mnemonic spelling (as produced by the
// lexer — real mnemonics bare, pseudo-ops dot-prefixed) to an Opcode.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicToOpcode[mnemonic]
	return op, ok
}

// IsPseudo reports whether op is one of the assembler directives.
func (op Opcode) IsPseudo() bool {
	return op >= ORIG && op <= END
}

// Instruction is a parsed line: an optional label, an opcode, its ordered
// operand list, and the address the assembler later assigns.
type Instruction struct {
	Label    string // empty when absent
	Op       Opcode
	OpTok    token.Token // position of the mnemonic, for diagnostics
	Operands []operand.Operand
	Address  uint16 // assigned by the assembler's pass 1; zero until then
}

// Display renders an instruction the way the round-trip property in
// spec.md §8 expects: "[label ]MNEMONIC [op1[, op2…]]".
func (inst Instruction) Display() string {
	var sb strings.Builder
	if inst.Label != "" {
		sb.WriteString(inst.Label)
		sb.WriteByte(' ')
	}
	sb.WriteString(inst.Op.String())
	for i, o := range inst.Operands {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(displayOperand(o))
	}
	return sb.String()
}

func displayOperand(o operand.Operand) string {
	switch o.Type {
	case operand.Register:
		return fmt.Sprintf("R%d", o.Reg)
	case operand.Immediate:
		return fmt.Sprintf("#%d", o.Int)
	case operand.Number:
		return fmt.Sprintf("%d", o.Int)
	case operand.Label:
		return o.Text
	case operand.StringLiteral:
		return fmt.Sprintf("%q", o.Text)
	default:
		return "?"
	}
}

// Sentinel returns the single-instruction vector the parser surrenders on
// unrecoverable failure, per spec.md §4.3.
func Sentinel() []*Instruction {
	return []*Instruction{{Op: UnknownOp}}
}
