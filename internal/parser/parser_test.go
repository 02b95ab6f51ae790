package parser_test

import (
	"testing"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/operand"
	"github.com/jpatt/lc3asm/internal/parser"
)

func TestParse_SimpleProgram(t *testing.T) {
	source := ".ORIG x3000\nADD R1, R2, R3\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)

	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %v", collector.Diagnostics)
	}
	if len(instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instructions))
	}
	if instructions[0].Op != ast.ORIG || instructions[1].Op != ast.ADD || instructions[2].Op != ast.END {
		t.Fatalf("unexpected opcodes: %v %v %v", instructions[0].Op, instructions[1].Op, instructions[2].Op)
	}
}

func TestParse_LabelOnOwnLine(t *testing.T) {
	source := ".ORIG x3000\nLOOP\nADD R1, R1, #-1\nBRp LOOP\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %v", collector.Diagnostics)
	}
	if instructions[1].Label != "LOOP" {
		t.Fatalf("expected label LOOP on ADD, got %q", instructions[1].Label)
	}
}

func TestParse_MissingOpcodeIsFatal(t *testing.T) {
	source := ".ORIG x3000\n#5\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if !collector.HasErrors() {
		t.Fatalf("expected an error")
	}
	if len(instructions) != 1 || instructions[0].Op != ast.UnknownOp {
		t.Fatalf("expected sentinel instruction, got %v", instructions)
	}
}

func TestParse_OperandList(t *testing.T) {
	source := ".ORIG x3000\nHELLO .STRINGZ \"Hi\"\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %v", collector.Diagnostics)
	}
	stringz := instructions[1]
	if stringz.Label != "HELLO" || stringz.Op != ast.STRINGZ {
		t.Fatalf("got %+v", stringz)
	}
	if len(stringz.Operands) != 1 || stringz.Operands[0].Type != operand.StringLiteral || stringz.Operands[0].Text != "Hi" {
		t.Fatalf("got %+v", stringz.Operands)
	}
}

func TestParse_NoOperandInstruction(t *testing.T) {
	source := ".ORIG x3000\nHALT\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %v", collector.Diagnostics)
	}
	if len(instructions[1].Operands) != 0 {
		t.Fatalf("expected no operands, got %v", instructions[1].Operands)
	}
}

func TestParse_BadImmediateIsFatal(t *testing.T) {
	source := ".ORIG x3000\nADD R1, R2, #\n.END\n"
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if !collector.HasErrors() {
		t.Fatalf("expected an error")
	}
	if instructions[0].Op != ast.UnknownOp {
		t.Fatalf("expected sentinel, got %v", instructions)
	}
}
