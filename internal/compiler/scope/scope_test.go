package scope

import (
	"testing"

	"github.com/arnavsurve/minic/internal/compiler/symbols"
)

func TestDeclareRejectsRedeclaration(t *testing.T) {
	s := NewScope(nil, "global")
	if _, ok := s.Declare(symbols.SymbolInfo{Name: "x", Type: symbols.TypeInt, Line: 1}); !ok {
		t.Fatalf("first Declare failed")
	}

	existing, ok := s.Declare(symbols.SymbolInfo{Name: "x", Type: symbols.TypeFloat, Line: 2})
	if ok {
		t.Fatalf("expected redeclaring x in the same scope to fail")
	}
	if existing.Line != 1 || existing.Type != symbols.TypeInt {
		t.Errorf("expected the line 1 int binding back, got=%+v", existing)
	}
	if info, _ := s.Local("x"); info.Type != symbols.TypeInt {
		t.Errorf("redeclaration overwrote x: expected=int, got=%s", info.Type)
	}
	if s.Len() != 1 {
		t.Errorf("expected=1 binding, got=%d", s.Len())
	}
}

func TestShadowingResolvesInnermost(t *testing.T) {
	global := NewScope(nil, "global")
	global.Declare(symbols.SymbolInfo{Name: "x", Type: symbols.TypeInt})
	global.Declare(symbols.SymbolInfo{Name: "y", Type: symbols.TypeChar})

	inner := NewScope(global, "block")
	if _, ok := inner.Declare(symbols.SymbolInfo{Name: "x", Type: symbols.TypeBoolean}); !ok {
		t.Fatalf("shadowing should be allowed")
	}

	info, level, _ := inner.Resolve("x")
	if info.Type != symbols.TypeBoolean || level != inner {
		t.Errorf("expected x to resolve to the block binding, got=%s in %q", info.Type, level.Name)
	}
	if info, _, _ := global.Resolve("x"); info.Type != symbols.TypeInt {
		t.Errorf("expected global x to stay int, got=%s", info.Type)
	}
	info, level, ok := inner.Resolve("y")
	if !ok || info.Type != symbols.TypeChar || level.Name != "global" {
		t.Errorf("expected y to resolve through the global scope")
	}
	if _, ok := inner.Local("y"); ok {
		t.Errorf("Local must not search outer scopes")
	}
	if _, level, ok := inner.Resolve("z"); ok || level != nil {
		t.Errorf("z should be undeclared")
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	s := NewScope(nil, "global")
	s.Declare(symbols.SymbolInfo{Name: "a", Type: symbols.TypeInt, IsArray: true, Size: 3})
	info, _, _ := s.Resolve("a")
	info.Size = 99
	if again, _ := s.Local("a"); again.Size != 3 {
		t.Errorf("scope entry mutated through resolve result: size=%d", again.Size)
	}
}
