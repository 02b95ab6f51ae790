// Package assemble drives the two passes described in spec.md §4.5: address
// assignment, label resolution, and encoding into machine words.
package assemble

import (
	"fmt"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/encode"
)

// Word is one assembled 16-bit memory cell, tagged with the address it will
// load at so the CLI front-end can render "(ADDR) BITS" lines without
// re-deriving the address from position.
type Word struct {
	Address uint16
	Bits    uint16
}

// Assemble runs pass 1 (address assignment), pass 2a (label scan), and pass
// 2b (encoding) over a validated instruction sequence. It returns the
// emitted words and true, or nil and false if any pass fails — in which
// case the failure has already been reported to sink.
//
// Callers are expected to have run validate.Validate first; Assemble does
// not re-check operand arity or type, only what pass 1/2a/2b themselves can
// discover (label redefinition, undefined labels, offset range).
func Assemble(instructions []*ast.Instruction, sink diag.Sink) ([]Word, bool) {
	words, _, ok := AssembleWithSymbols(instructions, sink)
	return words, ok
}

// AssembleWithSymbols is Assemble plus the resolved symbol table, for
// front ends that want to render it (the -S/--symbols CLI flag).
func AssembleWithSymbols(instructions []*ast.Instruction, sink diag.Sink) ([]Word, *SymbolTable, bool) {
	assignAddresses(instructions)

	symbols := NewSymbolTable()
	if !scanLabels(instructions, symbols, sink) {
		return nil, symbols, false
	}

	words, ok := encodeAll(instructions, symbols, sink)
	return words, symbols, ok
}

// assignAddresses implements pass 1. Per the chosen resolution to spec.md
// §9's open question, .ORIG contributes no address advance of its own: the
// instruction immediately following it is assigned .ORIG's operand address
// directly, rather than operand+1.
func assignAddresses(instructions []*ast.Instruction) {
	var addr uint16
	for _, inst := range instructions {
		if inst.Op == ast.ORIG {
			if len(inst.Operands) > 0 {
				addr = uint16(inst.Operands[0].Int)
			}
			inst.Address = addr
			continue
		}

		inst.Address = addr
		addr += wordsContributed(inst)
	}
}

func wordsContributed(inst *ast.Instruction) uint16 {
	switch inst.Op {
	case ast.FILL:
		return 1
	case ast.BLKW:
		if len(inst.Operands) == 0 {
			return 0
		}
		return uint16(inst.Operands[0].Int)
	case ast.STRINGZ:
		if len(inst.Operands) == 0 {
			return 1
		}
		return uint16(len(inst.Operands[0].Text)) + 1
	case ast.END:
		return 1
	default:
		return 1
	}
}

// scanLabels implements pass 2a.
func scanLabels(instructions []*ast.Instruction, symbols *SymbolTable, sink diag.Sink) bool {
	for _, inst := range instructions {
		if inst.Label == "" {
			continue
		}
		if !symbols.Define(inst.Label, inst.Address) {
			emit(sink, diag.KindLabelRedefined, inst, "label %q redefined", inst.Label)
			return false
		}
	}
	return true
}

// encodeAll implements pass 2b.
func encodeAll(instructions []*ast.Instruction, symbols *SymbolTable, sink diag.Sink) ([]Word, bool) {
	enc := encode.New(symbols)
	var words []Word

	for _, inst := range instructions {
		bits, err := enc.Encode(inst)
		if err != nil {
			reportEncodeError(sink, inst, err)
			return nil, false
		}
		addr := inst.Address
		for _, b := range bits {
			words = append(words, Word{Address: addr, Bits: b})
			addr++
		}
	}

	return words, true
}

func reportEncodeError(sink diag.Sink, inst *ast.Instruction, err error) {
	kind := diag.KindEncodingFailed
	if eerr, ok := err.(*encode.Error); ok {
		switch eerr.Kind {
		case encode.UndefinedLabel:
			kind = diag.KindLabelNotFound
		case encode.OffsetOutOfRange:
			kind = diag.KindOffsetOutOfRange
		}
	}
	emit(sink, kind, inst, "%s", err.Error())
}

func emit(sink diag.Sink, kind diag.Kind, inst *ast.Instruction, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Emit(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     kind,
		Pos:      diag.Position{Line: inst.OpTok.Line, Column: inst.OpTok.Col},
		Message:  fmt.Sprintf(format, args...),
	})
}
