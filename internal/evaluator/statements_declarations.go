package evaluator

import "github.com/0xJonas/Phi/internal/ast"

// target evaluates an assignment or declaration target. The result must be
// a symbol; it is bound but not dereferenced.
func (e *Evaluator) target(node ast.Expression, scope *Scope, action string) (*Symbol, Completion, error) {
	c, err := e.Eval(node, scope)
	if err != nil || c.Abrupt() {
		return nil, c, err
	}
	sym, ok := c.Value.(*Symbol)
	if !ok {
		return nil, c, e.positioned(newError(TypeError, "cannot %s %s", action, c.Value.Type()), node)
	}
	return sym.Bind(scope), c, nil
}

func (e *Evaluator) evalAssignExpression(node *ast.AssignExpression, scope *Scope) (Completion, error) {
	sym, c, err := e.target(node.Left, scope, "assign to")
	if err != nil || c.Abrupt() {
		return c, err
	}

	value, c, err := e.operand(node.Value, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}

	if err := sym.Assign(value); err != nil {
		return Completion{}, err
	}
	return normal(value), nil
}

// evalVarDeclaration declares every entry in order. Its value is the value
// of the last declared member.
func (e *Evaluator) evalVarDeclaration(node *ast.VarDeclaration, scope *Scope) (Completion, error) {
	result := normal(NULL)
	for _, entry := range node.Entries {
		c, err := e.declare(entry, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		result = c
	}
	return result, nil
}

// declare creates the member named by entry and assigns its value, if any.
// The member exists before the value is evaluated, so a function can refer
// to itself.
func (e *Evaluator) declare(entry *ast.Entry, scope *Scope) (Completion, error) {
	sym, c, err := e.target(entry.Name, scope, "declare")
	if err != nil || c.Abrupt() {
		return c, err
	}
	if err := sym.Declare(); err != nil {
		return Completion{}, e.positioned(err, entry.Name)
	}

	if entry.Value != nil {
		value, c, err := e.operand(entry.Value, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		if err := sym.Assign(value); err != nil {
			return Completion{}, e.positioned(err, entry.Name)
		}
	}

	value, err := sym.LookUp()
	if err != nil {
		return Completion{}, e.positioned(err, entry.Name)
	}
	return normal(value), nil
}
