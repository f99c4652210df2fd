package evaluator

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/config"
)

// evalFunctionLiteral builds a closure. Default values are evaluated now,
// in the defining scope.
func (e *Evaluator) evalFunctionLiteral(node *ast.FunctionLiteral, scope *Scope) (Completion, error) {
	params := &ParameterList{Defaults: NewCollection()}

	seen := make(map[string]bool, len(node.Parameters))
	for _, p := range node.Parameters {
		ident, ok := p.Name.(*ast.Identifier)
		if !ok {
			return Completion{}, newError(ArgumentError, "parameter names must be identifiers")
		}
		name := ident.Value
		if config.IsReservedName(name) {
			return Completion{}, newError(AccessError, "cannot use reserved name %s as a parameter", name)
		}
		if seen[name] {
			return Completion{}, newError(ArgumentError, "duplicate parameter %s", name)
		}
		seen[name] = true
		params.Names = append(params.Names, name)

		if p.Value == nil {
			continue
		}
		value, c, err := e.operand(p.Value, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		if err := params.Defaults.CreateNamed(name); err != nil {
			return Completion{}, err
		}
		if err := params.Defaults.SetNamed(name, value); err != nil {
			return Completion{}, err
		}
	}

	return normal(&Function{Parameters: params, Body: node.Body, Scope: scope}), nil
}

// evalCollectionLiteral fills a new collection. Entries are evaluated in a
// scope over the collection itself, so later entries see earlier ones and
// "this" is the collection being built.
func (e *Evaluator) evalCollectionLiteral(node *ast.CollectionLiteral, scope *Scope) (Completion, error) {
	coll := NewCollection()
	members := NewMemberScope(coll, scope)

	for _, entry := range node.Entries {
		if entry.Value == nil {
			value, c, err := e.operand(entry.Name, members)
			if err != nil || c.Abrupt() {
				return c, err
			}
			if err := coll.AppendUnnamed(value); err != nil {
				return Completion{}, e.positioned(err, entry.Name)
			}
			continue
		}

		if c, err := e.declare(entry, members); err != nil || c.Abrupt() {
			return c, err
		}
	}

	return normal(coll), nil
}
