package evaluator

import "github.com/0xJonas/Phi/internal/ast"

func (e *Evaluator) evalBlockExpression(block *ast.BlockExpression, scope *Scope) (Completion, error) {
	inner := NewEnclosedScope(scope)
	var result Object = NULL

	for i, expr := range block.Expressions {
		value, c, err := e.statement(expr, inner, i == len(block.Expressions)-1)
		if err != nil || c.Abrupt() {
			return c, err
		}
		result = value
	}

	return normal(result), nil
}

func (e *Evaluator) evalIfExpression(ie *ast.IfExpression, scope *Scope) (Completion, error) {
	inner := NewEnclosedScope(scope)

	holds, c, err := e.condition(ie.Condition, inner)
	if err != nil || c.Abrupt() {
		return c, err
	}

	branch := ie.Alternative
	if holds {
		branch = ie.Consequence
	}
	if branch == nil {
		return normal(NULL), nil
	}

	value, c, err := e.operand(branch, inner)
	if err != nil || c.Abrupt() {
		return c, err
	}
	return normal(value), nil
}

// condition evaluates a loop or if condition in value position.
func (e *Evaluator) condition(node ast.Expression, scope *Scope) (bool, Completion, error) {
	value, c, err := e.operand(node, scope)
	if err != nil || c.Abrupt() {
		return false, c, err
	}
	holds, err := isTruthy(value)
	if err != nil {
		return false, c, e.positioned(err, node)
	}
	return holds, c, nil
}

// iteration runs one loop body. It reports whether the loop must stop and,
// if so, the completion the loop itself ends with.
func (e *Evaluator) iteration(body ast.Expression, scope *Scope, result *Object) (bool, Completion, error) {
	value, c, err := e.operand(body, scope)
	if err != nil {
		return true, c, err
	}
	switch c.Kind {
	case Break:
		return true, normal(c.Value), nil
	case Continue:
		*result = c.Value
		return false, c, nil
	case Return:
		return true, c, nil
	}
	*result = value
	return false, c, nil
}

func (e *Evaluator) evalWhileExpression(we *ast.WhileExpression, scope *Scope) (Completion, error) {
	inner := NewEnclosedScope(scope)
	var result Object = NULL

	for {
		holds, c, err := e.condition(we.Condition, inner)
		if err != nil || c.Abrupt() {
			return c, err
		}
		if !holds {
			break
		}

		if stop, c, err := e.iteration(we.Body, inner, &result); stop {
			return c, err
		}
	}

	return normal(result), nil
}

func (e *Evaluator) evalForExpression(fe *ast.ForExpression, scope *Scope) (Completion, error) {
	inner := NewEnclosedScope(scope)
	var result Object = NULL

	c, err := e.Eval(fe.Init, inner)
	if err != nil || c.Abrupt() {
		return c, err
	}

	for {
		holds, c, err := e.condition(fe.Condition, inner)
		if err != nil || c.Abrupt() {
			return c, err
		}
		if !holds {
			break
		}

		if stop, c, err := e.iteration(fe.Body, inner, &result); stop {
			return c, err
		}

		c, err = e.Eval(fe.Update, inner)
		if err != nil || c.Abrupt() {
			return c, err
		}
	}

	return normal(result), nil
}

// evalExit evaluates break, continue and return. The payload, if any, is
// evaluated in value position; the completion carries it outward.
func (e *Evaluator) evalExit(kind CompletionKind, payload ast.Expression, scope *Scope) (Completion, error) {
	var value Object = NULL
	if payload != nil {
		v, c, err := e.operand(payload, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		value = v
	}
	return Completion{Kind: kind, Value: value}, nil
}
