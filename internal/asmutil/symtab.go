package asmutil

import "fmt"

// SymbolTable is the label table built during the parse pass and consulted
// during the resolve pass (spec.md §4.4's two-pass assembler). It is owned
// by a single assembler invocation and discarded afterwards (spec.md §5).
type SymbolTable struct {
	labels map[string]uint32
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{labels: make(map[string]uint32)}
}

// Define registers a .label at the current address. Redefinition is
// allowed (the second .label wins) since spec.md does not call out
// duplicate-label detection as a required diagnostic.
func (st *SymbolTable) Define(name string, address uint32) {
	st.labels[name] = address
}

// Lookup resolves a label, returning the UnresolvedLabel-flavored error
// spec.md §7 specifies ("undefined label <name>") when it is missing.
func (st *SymbolTable) Lookup(name string) (uint32, error) {
	addr, ok := st.labels[name]
	if !ok {
		return 0, fmt.Errorf("undefined label %s", name)
	}
	return addr, nil
}
