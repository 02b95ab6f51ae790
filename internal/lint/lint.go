// Package lint reports advisory issues over a parsed program:
// labels that are defined but never referenced, and code that follows an
// unconditional control transfer with no label to jump back in on. These
// never block assembly — grounded on the teacher's tools.Linter, whose
// checkUnusedLabels/checkUnreachableCode passes this package adapts from
// raw parser.Instruction/Directive scanning to typed ast.Instruction.
package lint

import (
	"fmt"
	"sort"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/operand"
)

// Level is an issue's severity. Unlike validate's hard errors, nothing
// lint reports prevents assembly.
type Level int

const (
	Warning Level = iota
	Info
)

func (l Level) String() string {
	if l == Info {
		return "info"
	}
	return "warning"
}

// Issue is a single lint finding.
type Issue struct {
	Level   Level
	Line    int
	Column  int
	Message string
	Code    string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Line, i.Column, i.Level, i.Message, i.Code)
}

// Options toggles individual checks.
type Options struct {
	CheckUnused      bool
	CheckUnreachable bool
}

// DefaultOptions enables every check.
func DefaultOptions() *Options {
	return &Options{CheckUnused: true, CheckUnreachable: true}
}

// Check runs the enabled passes over instructions and returns every issue
// found, sorted by source position.
func Check(instructions []*ast.Instruction, opts *Options) []Issue {
	if opts == nil {
		opts = DefaultOptions()
	}

	var issues []Issue
	if opts.CheckUnused {
		issues = append(issues, checkUnusedLabels(instructions)...)
	}
	if opts.CheckUnreachable {
		issues = append(issues, checkUnreachableCode(instructions)...)
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Line == issues[j].Line {
			return issues[i].Column < issues[j].Column
		}
		return issues[i].Line < issues[j].Line
	})
	return issues
}

// checkUnusedLabels warns about a label definition with no reference
// anywhere in the program's operands.
func checkUnusedLabels(instructions []*ast.Instruction) []Issue {
	type def struct{ line, col int }
	defined := make(map[string]def)
	referenced := make(map[string]bool)

	for _, inst := range instructions {
		if inst.Label != "" {
			if _, exists := defined[inst.Label]; !exists {
				defined[inst.Label] = def{inst.OpTok.Line, inst.OpTok.Col}
			}
		}
		for _, o := range inst.Operands {
			if o.Type == operand.Label {
				referenced[o.Text] = true
			}
		}
	}

	var issues []Issue
	for label, d := range defined {
		if referenced[label] {
			continue
		}
		issues = append(issues, Issue{
			Level:   Warning,
			Line:    d.line,
			Column:  d.col,
			Message: fmt.Sprintf("label %q defined but never referenced", label),
			Code:    "UNUSED_LABEL",
		})
	}
	return issues
}

// unconditionalTransfer reports whether op always leaves the instruction
// following it unreachable by fallthrough: an always-taken branch, a
// register jump, a subroutine or interrupt return, or HALT.
func unconditionalTransfer(op ast.Opcode) bool {
	switch op {
	case ast.BR, ast.BRnzp, ast.JMP, ast.RET, ast.RTI, ast.HALT:
		return true
	default:
		return false
	}
}

// checkUnreachableCode flags an instruction with no label immediately
// following an unconditional transfer: nothing in the program can jump to
// it, so it can never execute.
func checkUnreachableCode(instructions []*ast.Instruction) []Issue {
	var issues []Issue
	for i, inst := range instructions {
		if !unconditionalTransfer(inst.Op) {
			continue
		}
		if i+1 >= len(instructions) {
			continue
		}
		next := instructions[i+1]
		if next.Op == ast.END {
			continue
		}
		if next.Label != "" {
			continue
		}
		issues = append(issues, Issue{
			Level:   Warning,
			Line:    next.OpTok.Line,
			Column:  next.OpTok.Col,
			Message: "unreachable code: no label follows an unconditional transfer",
			Code:    "UNREACHABLE_CODE",
		})
	}
	return issues
}
