package assemble

import "sort"

// SymbolTable maps label text to its resolved address. Unlike a relocating
// linker's table, every label here is known statically by the time pass 2b
// runs, so there are no forward-reference placeholders to patch.
type SymbolTable struct {
	addrs map[string]uint16
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]uint16)}
}

// Define records label at addr. It reports false without modifying the
// table if label is already defined, per spec.md §4.5 pass 2a.
func (t *SymbolTable) Define(label string, addr uint16) bool {
	if _, exists := t.addrs[label]; exists {
		return false
	}
	t.addrs[label] = addr
	return true
}

// Resolve implements encode.SymbolLookup.
func (t *SymbolTable) Resolve(label string) (uint16, bool) {
	addr, ok := t.addrs[label]
	return addr, ok
}

// Entry is one row of a rendered symbol table.
type Entry struct {
	Label   string
	Address uint16
}

// Entries returns every defined symbol, sorted by address then name.
func (t *SymbolTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.addrs))
	for label, addr := range t.addrs {
		entries = append(entries, Entry{Label: label, Address: addr})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Address != entries[j].Address {
			return entries[i].Address < entries[j].Address
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}
