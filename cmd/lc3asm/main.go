// Command lc3asm assembles LC-3 source into machine words.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jpatt/lc3asm/config"
	"github.com/jpatt/lc3asm/internal/assemble"
	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/diag"
	"github.com/jpatt/lc3asm/internal/format"
	"github.com/jpatt/lc3asm/internal/lexer"
	"github.com/jpatt/lc3asm/internal/lint"
	"github.com/jpatt/lc3asm/internal/parser"
	"github.com/jpatt/lc3asm/internal/token"
	"github.com/jpatt/lc3asm/internal/tui"
	"github.com/jpatt/lc3asm/internal/validate"
	"github.com/jpatt/lc3asm/internal/xref"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	var (
		outputPath  string
		tokensMode  bool
		instMode    bool
		help        bool
		showVersion bool
		symbolsMode bool
		configPath  string
		listingMode bool
		tuiMode     bool
		quiet       bool
		lintMode    bool
		xrefMode    bool
		formatMode  bool
		compactFmt  bool
	)

	flag.StringVar(&outputPath, "o", "", "write output here (default: standard output)")
	flag.StringVar(&outputPath, "output", "", "write output here (default: standard output)")
	flag.BoolVar(&tokensMode, "t", false, "dump every token produced by the lexer, then exit")
	flag.BoolVar(&tokensMode, "tokens", false, "dump every token produced by the lexer, then exit")
	flag.BoolVar(&instMode, "I", false, "dump every parsed instruction, then exit")
	flag.BoolVar(&instMode, "instructions", false, "dump every parsed instruction, then exit")
	flag.BoolVar(&help, "h", false, "show help")
	flag.BoolVar(&help, "help", false, "show help")
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.BoolVar(&symbolsMode, "S", false, "dump the resolved symbol table, then exit")
	flag.BoolVar(&symbolsMode, "symbols", false, "dump the resolved symbol table, then exit")
	flag.StringVar(&configPath, "config", "", "load configuration from this path instead of the default")
	flag.BoolVar(&listingMode, "listing", false, "also write a .lst listing file alongside the normal output")
	flag.BoolVar(&tuiMode, "tui", false, "open an interactive listing browser instead of assembling")
	flag.BoolVar(&quiet, "quiet", false, "suppress diagnostic rendering; only the exit code reports failure")
	flag.BoolVar(&lintMode, "lint", false, "report unused labels and unreachable code, then exit")
	flag.BoolVar(&xrefMode, "xref", false, "print a symbol cross-reference report, then exit")
	flag.BoolVar(&formatMode, "format", false, "print the program reformatted to canonical columns, then exit")
	flag.BoolVar(&compactFmt, "compact", false, "use compact spacing with -format")

	flag.Usage = printHelp
	flag.Parse()

	if help {
		printHelp()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("lc3asm %s\n", Version)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(1)
	}
	sourcePath := flag.Arg(0)

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3asm: %v\n", err)
		os.Exit(1)
	}
	if quiet {
		cfg.Diagnostics.Quiet = true
	}

	raw, err := os.ReadFile(sourcePath) // #nosec G304 -- user-specified assembly source path
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3asm: cannot read %s: %v\n", sourcePath, err)
		os.Exit(1)
	}
	source := string(raw)

	if tokensMode {
		dumpTokens(source)
		os.Exit(0)
	}

	collector := diag.NewCollector()
	instructions := parser.ParseInstructions(source, sourcePath, collector)

	if instMode {
		if collector.HasErrors() {
			renderAndExit(collector, cfg)
		}
		for _, inst := range instructions {
			fmt.Println(inst.Display())
		}
		os.Exit(0)
	}

	if tuiMode {
		runListingBrowser(source, sourcePath, instructions, collector)
		return
	}

	if formatMode {
		if collector.HasErrors() {
			renderAndExit(collector, cfg)
		}
		opts := format.DefaultOptions()
		if compactFmt {
			opts = format.CompactOptions()
		}
		fmt.Print(format.Program(instructions, opts))
		os.Exit(0)
	}

	if lintMode {
		if collector.HasErrors() {
			renderAndExit(collector, cfg)
		}
		issues := lint.Check(instructions, lint.DefaultOptions())
		for _, iss := range issues {
			fmt.Println(iss.String())
		}
		if len(issues) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if xrefMode {
		if collector.HasErrors() {
			renderAndExit(collector, cfg)
		}
		fmt.Print(xref.Report(xref.Build(instructions)))
		os.Exit(0)
	}

	if collector.HasErrors() {
		renderAndExit(collector, cfg)
	}

	if !validate.Validate(instructions, collector) {
		renderAndExit(collector, cfg)
	}

	if symbolsMode {
		_, symbols, ok := assemble.AssembleWithSymbols(instructions, collector)
		if !ok {
			renderAndExit(collector, cfg)
		}
		dumpSymbols(symbols)
		os.Exit(0)
	}

	words, ok := assemble.Assemble(instructions, collector)
	if !ok {
		renderAndExit(collector, cfg)
	}

	out, closeOut := openOutput(outputPath, sourcePath, cfg)
	defer closeOut()

	for _, w := range words {
		writeWord(out, w, cfg.Output.NumberFormat)
	}

	if listingMode {
		if err := writeListingFile(sourcePath, instructions, words); err != nil {
			fmt.Fprintf(os.Stderr, "lc3asm: listing: %v\n", err)
			os.Exit(1)
		}
	}
}

// runListingBrowser re-lexes for the token pane, validates and assembles
// best-effort, and hands everything to the tui package. Unlike the other
// dump modes it does not fail the process on a diagnostic: the browser
// itself shows whatever pipeline stage produced output, same as the
// teacher's debugger.TUI tolerates a program with no symbol table yet.
func runListingBrowser(source, sourcePath string, instructions []*ast.Instruction, collector *diag.Collector) {
	l := lexer.New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.End {
			break
		}
	}

	var words []assemble.Word
	var symbols *assemble.SymbolTable
	if !collector.HasErrors() && validate.Validate(instructions, diag.NewCollector()) {
		words, symbols, _ = assemble.AssembleWithSymbols(instructions, diag.NewCollector())
	}

	data := tui.Data{
		SourcePath:   sourcePath,
		Source:       source,
		Tokens:       tokens,
		Instructions: instructions,
		Words:        words,
		Symbols:      symbols,
	}
	if err := tui.Browse(data); err != nil {
		fmt.Fprintf(os.Stderr, "lc3asm: tui: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// openOutput resolves where assembled words are written. An explicit -o
// wins; otherwise a non-default configured output directory redirects the
// assembled word output there under the source's base name with a .lst
// extension;
// otherwise it's standard output.
func openOutput(outputPath, sourcePath string, cfg *config.Config) (*os.File, func()) {
	if outputPath == "" && cfg.Paths.DefaultOutputDir != "." && cfg.Paths.DefaultOutputDir != "" {
		base := filepath.Base(sourcePath)
		ext := filepath.Ext(base)
		outputPath = filepath.Join(cfg.Paths.DefaultOutputDir, base[:len(base)-len(ext)]+".lst")
	}
	if outputPath == "" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(outputPath) // #nosec G304 -- user/config-specified output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3asm: cannot create %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	return f, func() { f.Close() }
}

// writeListingFile writes a .lst file next to sourcePath with one row per
// emitted word (address, hex, binary, source), the same address/hex/binary
// grouping internal/tui uses for its listing pane.
func writeListingFile(sourcePath string, instructions []*ast.Instruction, words []assemble.Word) error {
	ext := filepath.Ext(sourcePath)
	lstPath := sourcePath[:len(sourcePath)-len(ext)] + ".lst"

	f, err := os.Create(lstPath) // #nosec G304 -- derived from user-specified source path
	if err != nil {
		return err
	}
	defer f.Close()

	wordsByAddr := make(map[uint16][]assemble.Word)
	for _, w := range words {
		wordsByAddr[w.Address] = append(wordsByAddr[w.Address], w)
	}

	for _, inst := range instructions {
		rendered := inst.Display()
		ws, ok := wordsByAddr[inst.Address]
		// .ORIG shares its address with the first instruction's words.
		if !ok || len(ws) == 0 || inst.Op == ast.ORIG || inst.Op == ast.END {
			fmt.Fprintf(f, "                          %s\n", rendered)
			continue
		}
		fmt.Fprintf(f, "x%04X  %04X  %016b  %s\n", ws[0].Address, ws[0].Bits, ws[0].Bits, rendered)
		for _, extra := range ws[1:] {
			fmt.Fprintf(f, "x%04X  %04X  %016b\n", extra.Address, extra.Bits, extra.Bits)
		}
	}
	return nil
}

// writeWord renders one assembled word per cfg.Output.NumberFormat ("binary"
// or "hex"; any other value falls back to binary, matching spec.md §6's
// mandated default output line "(<ADDR-HEX-UPPER>) <16-BIT-BINARY>\n").
func writeWord(out *os.File, w assemble.Word, numberFormat string) {
	if numberFormat == "hex" {
		fmt.Fprintf(out, "(%04X) x%04X\n", w.Address, w.Bits)
		return
	}
	fmt.Fprintf(out, "(%04X) %016b\n", w.Address, w.Bits)
}

func renderAndExit(collector *diag.Collector, cfg *config.Config) {
	if !cfg.Diagnostics.Quiet {
		sink := diag.NewWriterSink(os.Stderr)
		sink.MaxErrors = cfg.Diagnostics.MaxErrors
		for _, d := range collector.Diagnostics {
			sink.Emit(d)
		}
	}
	os.Exit(1)
}

func dumpTokens(source string) {
	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Printf("%s %s\n", tok.Kind, escape(tok.Text(source)))
		if tok.Kind == token.End {
			return
		}
	}
}

func escape(s string) string {
	return strconv.Quote(s)
}

func dumpSymbols(symbols *assemble.SymbolTable) {
	fmt.Println("Symbol Table")
	fmt.Println("============")
	fmt.Println()
	fmt.Printf("%-20s %s\n", "Label", "Address")
	fmt.Println("-----------------------------")
	for _, e := range symbols.Entries() {
		fmt.Printf("%-20s x%04X\n", e.Label, e.Address)
	}
}

func printHelp() {
	fmt.Printf(`lc3asm %s — an LC-3 assembler

Usage: lc3asm [options] <source-file>

Options:
  -o, -output PATH     write output here (default: standard output)
  -t, -tokens          dump every token produced by the lexer, then exit
  -I, -instructions    dump every parsed instruction, then exit
  -S, -symbols         dump the resolved symbol table, then exit
  -listing             also write a .lst listing file alongside the output
  -tui                 open an interactive listing browser instead of assembling
  -lint                report unused labels and unreachable code, then exit
  -xref                print a symbol cross-reference report, then exit
  -format              print the program reformatted to canonical columns
  -compact             use compact spacing with -format
  -config PATH         load configuration from this path
  -quiet               suppress diagnostic rendering
  -version             show version information
  -h, -help            show this help message

Exit codes: 0 on success, 1 on any error.
`, Version)
}
