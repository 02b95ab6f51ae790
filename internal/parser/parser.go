// Package parser consumes a token stream from the lexer and builds the
// ordered instruction list the validator and assembler work from.
package parser

import (
	"fmt"
	"strings"

	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/lexer"
	"github.com/jpatt/lc3asm/internal/operand"
	"github.com/jpatt/lc3asm/internal/token"
)

// Parser turns a source buffer into an ordered []*ast.Instruction.
type Parser struct {
	source   string
	filename string
	lex      *lexer.Lexer
	cur      token.Token
	peek     token.Token
	sink     diag.Sink
	lines    []string // lazily split, used only for diagnostic context
}

// New returns a Parser ready to consume source. Diagnostics are emitted to
// sink as they are discovered, in source order.
func New(source, filename string, sink diag.Sink) *Parser {
	p := &Parser{
		source:   source,
		filename: filename,
		lex:      lexer.New(source),
		sink:     sink,
	}
	p.advance()
	p.advance()
	return p
}

// ParseInstructions is the package-level convenience matching spec.md
// §4.3's parse_instructions(source) contract.
func ParseInstructions(source, filename string, sink diag.Sink) []*ast.Instruction {
	return New(source, filename, sink).Parse()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) skipEOLs() {
	for p.cur.Kind == token.EOL {
		p.advance()
	}
}

func isOperandToken(k token.Kind) bool {
	switch k {
	case token.Register, token.Immediate, token.Number, token.Label, token.String:
		return true
	default:
		return false
	}
}

// Parse runs the top-level loop described in spec.md §4.3: it parses one
// instruction per iteration, stopping at End or at a successfully parsed
// .END (which is included in the result). On any error it abandons the
// partial result and returns the single UnknownOp sentinel instruction.
func (p *Parser) Parse() []*ast.Instruction {
	var instructions []*ast.Instruction

	p.skipEOLs()
	for p.cur.Kind != token.End {
		inst, ok := p.parseInstruction()
		if !ok {
			return ast.Sentinel()
		}
		instructions = append(instructions, inst)
		if inst.Op == ast.END {
			return instructions
		}
		p.skipEOLs()
	}

	if instructions == nil {
		instructions = []*ast.Instruction{}
	}
	return instructions
}

// parseInstruction implements spec.md §4.3's five numbered steps for a
// single instruction.
func (p *Parser) parseInstruction() (*ast.Instruction, bool) {
	inst := &ast.Instruction{}

	// 1. Optional label.
	if p.cur.Kind == token.Label {
		inst.Label = p.cur.Text(p.source)
		p.advance()
	}

	// 2. Labels may stand alone on a line.
	p.skipEOLs()

	// 3. Opcode or Pseudo is mandatory here.
	if p.cur.Kind != token.Opcode && p.cur.Kind != token.Pseudo {
		p.emit(diag.KindUnexpectedToken, p.cur, "expected an opcode or directive")
		return nil, false
	}

	mnemonic := p.cur.Text(p.source)
	op, ok := ast.Lookup(mnemonic)
	if !ok {
		p.emit(diag.KindUnexpectedToken, p.cur, fmt.Sprintf("unrecognized mnemonic %q", mnemonic))
		return nil, false
	}
	inst.Op = op
	inst.OpTok = p.cur
	p.advance()

	// 5. Operand list.
	if !isOperandToken(p.cur.Kind) {
		return inst, true
	}

	first, err := operand.FromToken(p.cur, p.source)
	if err != nil {
		p.emitOperandError(err)
		return nil, false
	}
	inst.Operands = append(inst.Operands, first)
	p.advance()

	for p.cur.Kind == token.Comma {
		p.advance()
		if !isOperandToken(p.cur.Kind) {
			p.emit(diag.KindUnexpectedToken, p.cur, "expected an operand after ','")
			return nil, false
		}
		next, err := operand.FromToken(p.cur, p.source)
		if err != nil {
			if oerr, ok := err.(*operand.Error); ok && oerr.Kind == operand.InvalidTokenKind {
				// Per spec.md §4.3: any operand-construction error other
				// than InvalidTokenKind is fatal on a non-first operand;
				// InvalidTokenKind itself just ends the operand list here.
				break
			}
			p.emitOperandError(err)
			return nil, false
		}
		inst.Operands = append(inst.Operands, next)
		p.advance()
	}

	return inst, true
}

func (p *Parser) emitOperandError(err error) {
	oerr, ok := err.(*operand.Error)
	if !ok {
		p.emit(diag.KindOperandConstruction, p.cur, err.Error())
		return
	}
	p.emit(diag.KindOperandConstruction, oerr.Tok,
		fmt.Sprintf("%s: %q", oerr.Kind, oerr.Text))
}

func (p *Parser) emit(kind diag.Kind, tok token.Token, message string) {
	if p.sink == nil {
		return
	}
	p.sink.Emit(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     kind,
		Pos:      diag.Position{Filename: p.filename, Line: tok.Line, Column: tok.Col},
		Message:  message,
		Context:  p.sourceLine(tok.Line),
	})
}

// sourceLine returns the raw text of line n (1-indexed), for diagnostic
// context, lazily splitting the source the first time it is needed.
func (p *Parser) sourceLine(n int) string {
	if p.lines == nil {
		p.lines = strings.Split(p.source, "\n")
	}
	if n < 1 || n > len(p.lines) {
		return ""
	}
	return p.lines[n-1]
}
