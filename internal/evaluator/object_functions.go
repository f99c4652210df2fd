package evaluator

import (
	"strings"

	"github.com/0xJonas/Phi/internal/ast"
)

// ParameterList describes the parameters of a function. Defaults holds a
// member for every parameter that has a default value, evaluated when the
// function was defined.
type ParameterList struct {
	Names    []string
	Defaults *Collection
}

// SupplyParameters builds the scope a call runs in. Positional arguments are
// the unnamed members of args, named arguments its named members.
func (pl *ParameterList) SupplyParameters(args *Collection, creation *Scope) (*Scope, error) {
	if args.Len() > len(pl.Names) {
		return nil, newError(ArgumentError, "too many arguments: expected at most %d, got %d", len(pl.Names), args.Len())
	}

	values := pl.Defaults.Clone()
	supplied := make(map[string]bool, len(pl.Names))
	for _, name := range pl.Names {
		if values.Has(name) {
			supplied[name] = true
			continue
		}
		if err := values.CreateNamed(name); err != nil {
			return nil, err
		}
	}

	for i, arg := range args.unnamed {
		name := pl.Names[i]
		values.named[name] = arg
		supplied[name] = true
	}
	for _, name := range args.order {
		if !values.Has(name) {
			return nil, newError(ArgumentError, "parameter %s does not exist", name)
		}
		values.named[name] = args.named[name]
		supplied[name] = true
	}

	for _, name := range pl.Names {
		if !supplied[name] {
			return nil, newError(ArgumentError, "missing value for parameter %s", name)
		}
	}

	return &Scope{bindings: values, parent: creation}, nil
}

// Function is a closure over the scope it was defined in.
type Function struct {
	Parameters *ParameterList
	Body       ast.Expression
	Scope      *Scope
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return "<function(" + strings.Join(f.Parameters.Names, ", ") + ")>"
}
