package evaluator

import "github.com/0xJonas/Phi/internal/ast"

// evalMemberExpression yields a symbol for c.name bound to the collection c.
func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, scope *Scope) (Completion, error) {
	left, c, err := e.operand(node.Left, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}
	coll, ok := left.(*Collection)
	if !ok {
		return Completion{}, newError(TypeError, "cannot access member %s of %s", node.Member.Value, left.Type())
	}
	return normal(&Symbol{Name: node.Member.Value, Location: coll}), nil
}

// evalIndexExpression yields an unnamed symbol for c[i].
func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, scope *Scope) (Completion, error) {
	left, c, err := e.operand(node.Left, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}
	index, c, err := e.operand(node.Index, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}
	i, ok := index.(*Integer)
	if !ok {
		return Completion{}, newError(TypeError, "index must be INT, got %s", index.Type())
	}
	return normal(&Symbol{Unnamed: true, Index: i.Value, Target: left}), nil
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, scope *Scope) (Completion, error) {
	fn, c, err := e.operand(node.Function, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}

	args := NewCollection()
	for _, arg := range node.Arguments {
		if arg.Value == nil {
			value, c, err := e.operand(arg.Name, scope)
			if err != nil || c.Abrupt() {
				return c, err
			}
			if err := args.AppendUnnamed(value); err != nil {
				return Completion{}, err
			}
			continue
		}

		ident, ok := arg.Name.(*ast.Identifier)
		if !ok {
			return Completion{}, newError(ArgumentError, "argument names must be identifiers")
		}
		value, c, err := e.operand(arg.Value, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		if args.Has(ident.Value) {
			return Completion{}, newError(ArgumentError, "argument %s given more than once", ident.Value)
		}
		if err := args.CreateNamed(ident.Value); err != nil {
			return Completion{}, newError(ArgumentError, "parameter %s does not exist", ident.Value)
		}
		args.named[ident.Value] = value
	}

	result, err := e.Call(fn, args)
	if err != nil {
		return Completion{}, err
	}
	return normal(result), nil
}
