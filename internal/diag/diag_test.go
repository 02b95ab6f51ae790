package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpatt/lc3asm/internal/diag"
)

func TestCollector_PreservesEmissionOrder(t *testing.T) {
	c := diag.NewCollector()
	c.Emit(diag.Diagnostic{Kind: diag.KindOrigMissing, Message: "first"})
	c.Emit(diag.Diagnostic{Kind: diag.KindLabelRedefined, Message: "second"})

	if len(c.Diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(c.Diagnostics))
	}
	if c.Diagnostics[0].Message != "first" || c.Diagnostics[1].Message != "second" {
		t.Errorf("emission order not preserved: %v", c.Diagnostics)
	}
}

func TestCollector_HasErrorsIgnoresWarnings(t *testing.T) {
	c := diag.NewCollector()
	c.Emit(diag.Diagnostic{Severity: diag.Warning, Message: "just a warning"})
	if c.HasErrors() {
		t.Fatalf("expected no errors, only a warning")
	}

	c.Emit(diag.Diagnostic{Severity: diag.Error, Message: "boom"})
	if !c.HasErrors() {
		t.Fatalf("expected HasErrors true after an Error-severity diagnostic")
	}
}

func TestCollector_Errors(t *testing.T) {
	c := diag.NewCollector()
	c.Emit(diag.Diagnostic{Severity: diag.Warning, Message: "w"})
	c.Emit(diag.Diagnostic{Severity: diag.Error, Message: "e1"})
	c.Emit(diag.Diagnostic{Severity: diag.Error, Message: "e2"})

	errs := c.Errors()
	if len(errs) != 2 || errs[0].Message != "e1" || errs[1].Message != "e2" {
		t.Errorf("got %v", errs)
	}
}

func TestCollector_First(t *testing.T) {
	c := diag.NewCollector()
	if _, ok := c.First(); ok {
		t.Fatalf("expected no first diagnostic on an empty collector")
	}
	c.Emit(diag.Diagnostic{Message: "only"})
	d, ok := c.First()
	if !ok || d.Message != "only" {
		t.Fatalf("got %v, %v", d, ok)
	}
}

func TestDiagnostic_StringIncludesPositionAndContext(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.Error,
		Pos:      diag.Position{Filename: "test.asm", Line: 3, Column: 5},
		Message:  "bad thing",
		Context:  "ADD R1, R2, #99",
	}
	s := d.String()
	if !strings.Contains(s, "test.asm:3:5") || !strings.Contains(s, "bad thing") || !strings.Contains(s, "ADD R1, R2, #99") {
		t.Errorf("got %q", s)
	}
}

func TestWriterSink_StopsAtMaxErrors(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.NewWriterSink(&buf)
	sink.MaxErrors = 2

	for i := 0; i < 5; i++ {
		sink.Emit(diag.Diagnostic{Message: "e"})
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("got %d rendered lines, want 2", lines)
	}
}

func TestWriterSink_ZeroMaxErrorsIsUnlimited(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.NewWriterSink(&buf)

	for i := 0; i < 5; i++ {
		sink.Emit(diag.Diagnostic{Message: "e"})
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 5 {
		t.Errorf("got %d rendered lines, want 5", lines)
	}
}
