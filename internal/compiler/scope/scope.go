// Package scope implements the nested name tables used by semantic analysis.
package scope

import "github.com/arnavsurve/minic/internal/compiler/symbols"

// Scope is one level of bindings. Levels chain outwards through Outer; the
// outermost level has a nil Outer.
type Scope struct {
	Name  string // "global", "main", "block", "if", "else" or "while"
	Outer *Scope

	bindings map[string]symbols.SymbolInfo
}

func NewScope(outer *Scope, name string) *Scope {
	return &Scope{
		Name:     name,
		Outer:    outer,
		bindings: make(map[string]symbols.SymbolInfo),
	}
}

// Declare binds info.Name at this level. If the name is already bound here
// the earlier binding is returned with ok=false and the scope is unchanged.
func (s *Scope) Declare(info symbols.SymbolInfo) (existing symbols.SymbolInfo, ok bool) {
	if prev, bound := s.bindings[info.Name]; bound {
		return prev, false
	}
	s.bindings[info.Name] = info
	return info, true
}

// Resolve returns the innermost binding of name and the level holding it.
func (s *Scope) Resolve(name string) (symbols.SymbolInfo, *Scope, bool) {
	for level := s; level != nil; level = level.Outer {
		if info, ok := level.bindings[name]; ok {
			return info, level, true
		}
	}
	return symbols.SymbolInfo{}, nil, false
}

// Local looks name up at this level only.
func (s *Scope) Local(name string) (symbols.SymbolInfo, bool) {
	info, ok := s.bindings[name]
	return info, ok
}

// Len is the number of names bound at this level.
func (s *Scope) Len() int { return len(s.bindings) }
