package evaluator

// Location is anything a named Symbol can be bound to.
type Location interface {
	GetNamed(name string) (Object, error)
	SetNamed(name string, value Object) error
	CreateNamed(name string) error
}

// Symbol is a reference to a member. Named symbols address Name in a
// Location; a bare identifier evaluates to an unbound named symbol that its
// consumer binds to the current scope. Unnamed symbols come from subscripts
// and address Index in Target.
type Symbol struct {
	Name     string
	Location Location

	Unnamed bool
	Index   int64
	Target  Object
}

func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) Inspect() string  { return s.Name }

// Bound reports whether the symbol refers to a concrete location.
func (s *Symbol) Bound() bool {
	if s.Unnamed {
		return s.Target != nil
	}
	return s.Location != nil
}

// Bind returns s if it is bound, otherwise a copy bound to scope.
func (s *Symbol) Bind(scope *Scope) *Symbol {
	if s.Bound() || s.Unnamed {
		return s
	}
	bound := *s
	bound.Location = scope
	return &bound
}

// Declare creates the member the symbol refers to.
func (s *Symbol) Declare() error {
	if !s.Bound() {
		return newError(AccessError, "cannot declare unbound symbol %s", s.Name)
	}
	if s.Unnamed {
		c, ok := s.Target.(*Collection)
		if !ok {
			return newError(AccessError, "cannot create index %d in %s", s.Index, s.Target.Type())
		}
		return c.CreateUnnamed(s.Index)
	}
	return s.Location.CreateNamed(s.Name)
}

// LookUp reads the member the symbol refers to.
func (s *Symbol) LookUp() (Object, error) {
	if !s.Bound() {
		return nil, newError(AccessError, "cannot read unbound symbol %s", s.Name)
	}
	if s.Unnamed {
		return GetUnnamed(s.Target, s.Index)
	}
	return s.Location.GetNamed(s.Name)
}

// Assign writes value to the member the symbol refers to.
func (s *Symbol) Assign(value Object) error {
	if !s.Bound() {
		return newError(AccessError, "cannot assign to unbound symbol %s", s.Name)
	}
	if s.Unnamed {
		return SetUnnamed(s.Target, s.Index, value)
	}
	return s.Location.SetNamed(s.Name, value)
}

// BindAndLookUp turns the result of an expression into a plain value:
// symbols are bound to scope when needed and dereferenced, anything else is
// returned as is.
func BindAndLookUp(o Object, scope *Scope) (Object, error) {
	sym, ok := o.(*Symbol)
	if !ok {
		return o, nil
	}
	return sym.Bind(scope).LookUp()
}

// quoteLocation holds exactly one member, the unbound symbol of the same
// name. Reading a quoted name therefore yields the symbol itself.
type quoteLocation struct {
	symbol *Symbol
}

func quote(name string) *Symbol {
	return &Symbol{Name: name, Location: &quoteLocation{symbol: &Symbol{Name: name}}}
}

func (q *quoteLocation) GetNamed(name string) (Object, error) {
	if name != q.symbol.Name {
		return nil, newError(AccessError, "%s is not defined", name)
	}
	return q.symbol, nil
}

func (q *quoteLocation) SetNamed(name string, value Object) error {
	return newError(AccessError, "quoted symbol %s is read-only", name)
}

func (q *quoteLocation) CreateNamed(name string) error {
	return newError(AccessError, "quoted symbol %s is read-only", name)
}
