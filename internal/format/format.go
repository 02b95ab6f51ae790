// Package format renders a parsed program back to canonical column-aligned
// assembly text, grounded on the teacher's tools.Formatter: the same
// label/mnemonic/operand column layout and Default/Compact/Expanded style
// presets, retargeted from the teacher's raw-operand-string parser.Instruction
// to this assembler's typed ast.Instruction/operand.Operand.
package format

import (
	"fmt"
	"strings"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/operand"
)

// Style selects a formatting preset.
type Style int

const (
	Default Style = iota
	Compact
	Expanded
)

// Options controls column placement. Comments are not preserved: the
// lexer discards them (spec.md §4.1), so there is nothing left by the
// time an *ast.Instruction reaches this package to align a comment
// column against.
type Options struct {
	Style             Style
	InstructionColumn int
	OperandColumn     int
	AlignOperands     bool
}

// DefaultOptions mirrors the teacher's DefaultFormatOptions layout.
func DefaultOptions() *Options {
	return &Options{
		Style:             Default,
		InstructionColumn: 8,
		OperandColumn:     16,
		AlignOperands:     true,
	}
}

// CompactOptions packs label, mnemonic, and operands with single spaces.
func CompactOptions() *Options {
	return &Options{Style: Compact}
}

// ExpandedOptions widens the columns for readability.
func ExpandedOptions() *Options {
	return &Options{
		Style:             Expanded,
		InstructionColumn: 12,
		OperandColumn:     24,
		AlignOperands:     true,
	}
}

// Program renders every instruction in source order using opts, or
// DefaultOptions if opts is nil.
func Program(instructions []*ast.Instruction, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	var out strings.Builder
	for _, inst := range instructions {
		formatInstruction(&out, inst, opts)
	}
	return out.String()
}

func formatInstruction(out *strings.Builder, inst *ast.Instruction, opts *Options) {
	var line strings.Builder

	if inst.Label != "" {
		line.WriteString(inst.Label)
		line.WriteString(":")
		if opts.Style == Compact {
			line.WriteString(" ")
		} else {
			padToColumn(&line, opts.InstructionColumn)
		}
	} else if opts.Style != Compact {
		padToColumn(&line, opts.InstructionColumn)
	}

	line.WriteString(inst.Op.String())

	if len(inst.Operands) > 0 {
		if opts.Style == Compact {
			line.WriteString(" ")
		} else if opts.AlignOperands {
			padToColumn(&line, opts.OperandColumn)
		} else {
			line.WriteString("\t")
		}
		line.WriteString(formatOperands(inst.Operands))
	}

	out.WriteString(line.String())
	out.WriteString("\n")
}

func formatOperands(operands []operand.Operand) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = formatOperand(o)
	}
	return strings.Join(parts, ", ")
}

func formatOperand(o operand.Operand) string {
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

// padToColumn pads line to column, or adds a single separating space if
// it has already run past it — matching the teacher's padToColumn.
func padToColumn(line *strings.Builder, column int) {
	current := line.Len()
	switch {
	case current < column:
		line.WriteString(strings.Repeat(" ", column-current))
	case current > column:
		line.WriteString(" ")
	}
}
