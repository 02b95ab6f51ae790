// Package xref builds a symbol cross-reference report: for every label,
// where it is defined and every instruction that refers to it, classified
// by how. Grounded on the teacher's tools.XRefGenerator/XRefReport, which
// built the same definition/reference table by re-scanning
// parser.Instruction operand strings; this package works directly from
// the typed ast.Instruction/operand.Operand the rest of the pipeline
// already produced.
package xref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/operand"
)

// RefKind classifies how an instruction refers to a label.
type RefKind int

const (
	RefBranch RefKind = iota
	RefSubroutineCall
	RefMemory
)

func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefSubroutineCall:
		return "call"
	case RefMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// Reference is one use of a label by an instruction.
type Reference struct {
	Kind RefKind
	Line int
	Col  int
}

// Symbol is a label's definition site (if any appeared in this file) plus
// every instruction that refers to it.
type Symbol struct {
	Name       string
	Defined    bool
	DefLine    int
	DefCol     int
	References []Reference
}

// Build scans instructions and returns every symbol mentioned — either as
// a label definition or as an operand — sorted by name.
func Build(instructions []*ast.Instruction) []*Symbol {
	symbols := make(map[string]*Symbol)

	get := func(name string) *Symbol {
		s, ok := symbols[name]
		if !ok {
			s = &Symbol{Name: name}
			symbols[name] = s
		}
		return s
	}

	for _, inst := range instructions {
		if inst.Label != "" {
			s := get(inst.Label)
			s.Defined = true
			s.DefLine = inst.OpTok.Line
			s.DefCol = inst.OpTok.Col
		}

		kind := referenceKind(inst.Op)
		for _, o := range inst.Operands {
			if o.Type != operand.Label {
				continue
			}
			s := get(o.Text)
			s.References = append(s.References, Reference{
				Kind: kind,
				Line: inst.OpTok.Line,
				Col:  inst.OpTok.Col,
			})
		}
	}

	out := make([]*Symbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func referenceKind(op ast.Opcode) RefKind {
	switch op {
	case ast.JSR:
		return RefSubroutineCall
	case ast.BR, ast.BRn, ast.BRz, ast.BRp, ast.BRzp, ast.BRnp, ast.BRnz, ast.BRnzp:
		return RefBranch
	default:
		return RefMemory
	}
}

// Undefined returns every symbol referenced but never defined in this
// file — the same labels the assembler's encoding pass (encodeAll) fails
// on as undefined.
func Undefined(symbols []*Symbol) []*Symbol {
	var out []*Symbol
	for _, s := range symbols {
		if !s.Defined && len(s.References) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Unused returns every symbol defined but never referenced.
func Unused(symbols []*Symbol) []*Symbol {
	var out []*Symbol
	for _, s := range symbols {
		if s.Defined && len(s.References) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// Report renders symbols as the text table the -xref CLI mode prints:
// one block per symbol naming its definition line and every reference,
// grouped by kind, followed by a summary count.
func Report(symbols []*Symbol) string {
	var sb strings.Builder
	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, s := range symbols {
		sb.WriteString(fmt.Sprintf("%-20s", s.Name))
		if s.Defined {
			sb.WriteString(fmt.Sprintf(" defined line %d\n", s.DefLine))
		} else {
			sb.WriteString(" (undefined)\n")
		}

		if len(s.References) == 0 {
			sb.WriteString("  referenced: (never)\n\n")
			continue
		}

		byKind := make(map[RefKind][]Reference)
		for _, r := range s.References {
			byKind[r.Kind] = append(byKind[r.Kind], r)
		}
		for _, kind := range []RefKind{RefSubroutineCall, RefBranch, RefMemory} {
			refs := byKind[kind]
			if len(refs) == 0 {
				continue
			}
			lines := make([]string, len(refs))
			for i, r := range refs {
				lines[i] = fmt.Sprintf("%d", r.Line)
			}
			sb.WriteString(fmt.Sprintf("  %-6s line(s) %s\n", kind, strings.Join(lines, ", ")))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Total symbols: %d, undefined: %d, unused: %d\n",
		len(symbols), len(Undefined(symbols)), len(Unused(symbols))))

	return sb.String()
}
