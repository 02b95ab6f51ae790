// Package tui implements the read-only listing browser reachable from the
// CLI's -tui flag (spec.md §6.5). It is grounded on the teacher's
// debugger.TUI: the same tcell.Screen/tview.Application/tview.Pages
// wiring, repurposed from a live stepping debugger into a static browser
// over a completed assembly's tokens, instructions, and symbol table.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jpatt/lc3asm/internal/assemble"
	"github.com/jpatt/lc3asm/internal/ast"
	"github.com/jpatt/lc3asm/internal/token"
)

// Data is everything the browser renders. The CLI assembles the full
// pipeline output once and hands it over; the browser never re-parses or
// re-assembles anything itself.
type Data struct {
	SourcePath   string
	Source       string
	Tokens       []token.Token
	Instructions []*ast.Instruction
	Words        []assemble.Word
	Symbols      *assemble.SymbolTable
}

// Browser is the three-pane listing browser: a token list, an
// instruction/listing view (address, hex, binary, source), and a symbol
// table view, matching the panel split named in spec.md §6.5.
type Browser struct {
	data Data

	app   *tview.Application
	pages *tview.Pages

	tokenView   *tview.TextView
	listingView *tview.TextView
	symbolView  *tview.TextView
	statusBar   *tview.TextView
}

// Browse opens the interactive browser over data and blocks until the
// user quits (q or Ctrl-C). It returns an error only if the terminal
// could not be initialized or the event loop failed — the same failure
// contract the teacher's debugger.TUI.Run has.
func Browse(data Data) error {
	b := &Browser{
		data: data,
		app:  tview.NewApplication(),
	}
	b.initializeViews()
	b.buildLayout()
	b.setupKeyBindings()
	b.refresh()

	return b.app.SetRoot(b.pages, true).SetFocus(b.listingView).Run()
}

func (b *Browser) initializeViews() {
	b.tokenView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	b.tokenView.SetBorder(true).SetTitle(" Tokens ")

	b.listingView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	b.listingView.SetBorder(true).SetTitle(fmt.Sprintf(" Listing: %s ", b.data.SourcePath))

	b.symbolView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	b.symbolView.SetBorder(true).SetTitle(" Symbols ")

	b.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	b.statusBar.SetText("[yellow]q[white] quit  [yellow]Tab[white] switch pane  [yellow]↑/↓[white] scroll")
}

func (b *Browser) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(b.listingView, 0, 3, true).
		AddItem(b.tokenView, 0, 2, false)

	right := b.symbolView

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 3, true).
		AddItem(right, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(b.statusBar, 1, 0, false)

	b.pages = tview.NewPages().AddPage("main", root, true, true)
}

func (b *Browser) setupKeyBindings() {
	panes := []tview.Primitive{b.listingView, b.tokenView, b.symbolView}
	focus := 0

	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC:
			b.app.Stop()
			return nil
		case event.Rune() == 'q':
			b.app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			focus = (focus + 1) % len(panes)
			b.app.SetFocus(panes[focus])
			return nil
		}
		return event
	})
}

func (b *Browser) refresh() {
	b.updateTokenView()
	b.updateListingView()
	b.updateSymbolView()
}

func (b *Browser) updateTokenView() {
	var lines []string
	for _, tok := range b.data.Tokens {
		if tok.Kind == token.End {
			continue
		}
		lines = append(lines, fmt.Sprintf("%4d:%-3d [yellow]%-9s[white] %s",
			tok.Line, tok.Col, tok.Kind, tok.Text(b.data.Source)))
	}
	b.tokenView.SetText(strings.Join(lines, "\n"))
}

// updateListingView renders one row per emitted word, matching the
// address/hex/binary/source columns spec.md §6.5 names. Pseudo-ops that
// emit no words (.ORIG, .END) still get a row so the source stays
// readable top to bottom.
func (b *Browser) updateListingView() {
	wordsByAddr := make(map[uint16][]assemble.Word)
	for _, w := range b.data.Words {
		wordsByAddr[w.Address] = append(wordsByAddr[w.Address], w)
	}

	var lines []string
	for _, inst := range b.data.Instructions {
		rendered := inst.Display()
		// .ORIG shares its address with the first instruction; .END emits
		// nothing. Neither takes the words stored at its address.
		wordless := inst.Op == ast.ORIG || inst.Op == ast.END
		if ws, ok := wordsByAddr[inst.Address]; ok && len(ws) > 0 && !wordless {
			w := ws[0]
			lines = append(lines, fmt.Sprintf("[green]x%04X[white]  %04X  %016b  %s",
				w.Address, w.Bits, w.Bits, rendered))
			for _, extra := range ws[1:] {
				lines = append(lines, fmt.Sprintf("[green]x%04X[white]  %04X  %016b",
					extra.Address, extra.Bits, extra.Bits))
			}
			continue
		}
		lines = append(lines, fmt.Sprintf("[darkgray]      %s[white]", rendered))
	}
	b.listingView.SetText(strings.Join(lines, "\n"))
}

func (b *Browser) updateSymbolView() {
	if b.data.Symbols == nil {
		b.symbolView.SetText("[yellow]no symbol table (validation failed)[white]")
		return
	}
	var lines []string
	lines = append(lines, "[yellow]Label                Address[white]")
	for _, e := range b.data.Symbols.Entries() {
		lines = append(lines, fmt.Sprintf("%-20s x%04X", e.Label, e.Address))
	}
	b.symbolView.SetText(strings.Join(lines, "\n"))
}
