package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpatt/lc3asm/config"
	"github.com/jpatt/lc3asm/internal/assemble"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/parser"
	"github.com/jpatt/lc3asm/internal/validate"
)

// assembleForTest runs the same pipeline main runs before writeWord, without
// touching flags or os.Exit.
func assembleForTest(t *testing.T, source string) []assemble.Word {
	t.Helper()
	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, "test.asm", collector)
	if collector.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", collector.Diagnostics)
	}
	if !validate.Validate(instructions, collector) {
		t.Fatalf("unexpected validation errors: %v", collector.Diagnostics)
	}
	words, ok := assemble.Assemble(instructions, collector)
	if !ok {
		t.Fatalf("unexpected assembly errors: %v", collector.Diagnostics)
	}
	return words
}

func readBack(t *testing.T, f *os.File) string {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return string(data)
}

// TestWriteWord_DefaultFormatIsBinary pins spec.md §8 scenario 1's required
// default output line against the configured default NumberFormat, the gap
// a prior review caught: config.DefaultConfig used to default to "hex".
func TestWriteWord_DefaultFormatIsBinary(t *testing.T) {
	words := assembleForTest(t, ".ORIG x3000\nADD R1, R2, R3\n.END\n")
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()

	writeWord(f, words[0], config.DefaultConfig().Output.NumberFormat)

	got := readBack(t, f)
	want := "(3000) 0001001010000011\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteWord_HexFormat(t *testing.T) {
	words := assembleForTest(t, ".ORIG x3000\nADD R1, R2, R3\n.END\n")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()

	writeWord(f, words[0], "hex")

	got := readBack(t, f)
	want := "(3000) x1283\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestWriteWord_UnrecognizedFormatFallsBackToBinary matches
// config.DefaultConfig's "binary" default: any value other than the literal
// "hex" renders binary, so a config typo degrades to the spec default
// instead of silently matching neither branch.
func TestWriteWord_UnrecognizedFormatFallsBackToBinary(t *testing.T) {
	words := assembleForTest(t, ".ORIG x3000\nADD R1, R2, R3\n.END\n")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()

	writeWord(f, words[0], "")

	got := readBack(t, f)
	want := "(3000) 0001001010000011\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOpenOutput_DefaultOutputDirRedirectsWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Paths.DefaultOutputDir = dir

	out, closeOut := openOutput("", filepath.Join(dir, "prog.asm"), cfg)
	defer closeOut()

	if out == os.Stdout {
		t.Fatalf("expected redirected file, got stdout")
	}
	if filepath.Base(out.Name()) != "prog.lst" {
		t.Errorf("got %q, want basename prog.lst", out.Name())
	}
}
