// Package scope implements the lexical scope chain for Brine: a stack of
// symbol tables with case-insensitive name resolution. Two scopes may each
// define a symbol with the same name; symbol identity is the pointer, not
// the spelling.
package scope

import "strings"

// Symbol is the identity token for a declared variable.
type Symbol struct {
	Name string
}

// Table is one lexical scope. It links to its parent scope; resolution
// walks the chain outward, definition only ever touches this table.
type Table struct {
	symbols map[string]*Symbol
	parent  *Table
}

func NewTable(parent *Table) *Table {
	return &Table{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (t *Table) Parent() *Table { return t.parent }

// DuplicateSymbolError reports a redeclaration within a single scope.
type DuplicateSymbolError struct {
	Name string
}

func (e *DuplicateSymbolError) Error() string {
	return "duplicate symbol " + e.Name
}

// UnknownSymbolError reports a name that resolves nowhere on the chain.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return "unknown symbol " + e.Name
}

// Define binds a fresh symbol in this exact scope. Shadowing an outer
// definition is allowed; colliding with one in this scope is not.
func (t *Table) Define(name string) (*Symbol, error) {
	key := strings.ToLower(name)
	if _, exists := t.symbols[key]; exists {
		return nil, &DuplicateSymbolError{Name: name}
	}
	sym := &Symbol{Name: name}
	t.symbols[key] = sym
	return sym, nil
}

// Resolve looks the name up in this scope, then in each parent.
func (t *Table) Resolve(name string) (*Symbol, error) {
	key := strings.ToLower(name)
	for s := t; s != nil; s = s.parent {
		if sym, exists := s.symbols[key]; exists {
			return sym, nil
		}
	}
	return nil, &UnknownSymbolError{Name: name}
}
