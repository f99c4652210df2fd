package evaluator

import "github.com/0xJonas/Phi/internal/config"

// Scope holds the bindings of one lexical region. Bindings live in a
// Collection; names missing there are looked up in the enclosing scope.
// The reserved names this, length and super always refer to the outermost
// collection a scope chain stands for, so nested scopes forward them.
type Scope struct {
	bindings *Collection
	parent   *Scope
	// anchored scopes answer reserved names from their own bindings even
	// when nested. Collection literals evaluate their entries in one.
	anchored bool
}

func NewScope() *Scope {
	return &Scope{bindings: NewCollection()}
}

func NewEnclosedScope(outer *Scope) *Scope {
	scope := NewScope()
	scope.parent = outer
	return scope
}

// NewMemberScope returns a scope whose bindings are coll, used while coll is
// being filled from a collection literal.
func NewMemberScope(coll *Collection, outer *Scope) *Scope {
	return &Scope{bindings: coll, parent: outer, anchored: true}
}

// Collection returns the collection holding this scope's bindings.
func (s *Scope) Collection() *Collection { return s.bindings }

func (s *Scope) Parent() *Scope { return s.parent }

func (s *Scope) forwards(name string) bool {
	return s.parent != nil && !s.anchored && config.IsReservedName(name)
}

// GetNamed resolves name in this scope or the nearest enclosing scope that
// defines it.
func (s *Scope) GetNamed(name string) (Object, error) {
	if s.forwards(name) {
		return s.parent.GetNamed(name)
	}
	if config.IsReservedName(name) || s.bindings.namedOwner(name) != nil {
		return s.bindings.GetNamed(name)
	}
	if s.parent != nil {
		return s.parent.GetNamed(name)
	}
	return nil, newError(AccessError, "%s is not defined", name)
}

// SetNamed writes to the binding GetNamed would read.
func (s *Scope) SetNamed(name string, value Object) error {
	if s.forwards(name) {
		return s.parent.SetNamed(name, value)
	}
	if config.IsReservedName(name) || s.bindings.namedOwner(name) != nil {
		return s.bindings.SetNamed(name, value)
	}
	if s.parent != nil {
		return s.parent.SetNamed(name, value)
	}
	return newError(AccessError, "%s is not defined", name)
}

// CreateNamed declares name in this scope, shadowing outer bindings.
func (s *Scope) CreateNamed(name string) error {
	return s.bindings.CreateNamed(name)
}
