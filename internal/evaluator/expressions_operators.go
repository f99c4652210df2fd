package evaluator

import (
	"math"

	"github.com/0xJonas/Phi/internal/ast"
)

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, scope *Scope) (Completion, error) {
	if node.Operator == "'" {
		ident, ok := node.Right.(*ast.Identifier)
		if !ok {
			return Completion{}, newError(TypeError, "only names can be quoted")
		}
		return normal(quote(ident.Value)), nil
	}

	right, c, err := e.operand(node.Right, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}

	switch node.Operator {
	case "-":
		switch right := right.(type) {
		case *Integer:
			return normal(&Integer{Value: -right.Value}), nil
		case *Float:
			return normal(&Float{Value: -right.Value}), nil
		}
	case "!":
		if right, ok := right.(*Integer); ok {
			return normal(&Integer{Value: ^right.Value}), nil
		}
	case "new":
		if right, ok := right.(*Collection); ok {
			return normal(right.Clone()), nil
		}
	}
	return Completion{}, newError(TypeError, "unknown operator: %s%s", node.Operator, right.Type())
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, scope *Scope) (Completion, error) {
	left, c, err := e.operand(node.Left, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}
	right, c, err := e.operand(node.Right, scope)
	if err != nil || c.Abrupt() {
		return c, err
	}

	result, err := evalBinaryOperator(node.Operator, left, right)
	if err != nil {
		return Completion{}, err
	}
	return normal(result), nil
}

func evalBinaryOperator(operator string, left, right Object) (Object, error) {
	switch operator {
	case "&", "|", "^", "<<", ">>":
		l, lok := left.(*Integer)
		r, rok := right.(*Integer)
		if !lok || !rok {
			return nil, newError(TypeError, "operator %s needs INT operands, got %s and %s", operator, left.Type(), right.Type())
		}
		return evalBitwiseOperator(operator, l.Value, r.Value), nil
	}

	common, ok := CommonType(left.Type(), right.Type())
	if !ok {
		return nil, newError(TypeError, "incompatible operand types %s and %s for %s", left.Type(), right.Type(), operator)
	}

	switch common {
	case INTEGER_OBJ:
		return evalIntegerOperator(operator, left.(*Integer).Value, right.(*Integer).Value)
	case FLOAT_OBJ:
		l, _ := AsFloat(left)
		r, _ := AsFloat(right)
		return evalFloatOperator(operator, l, r)
	case STRING_OBJ:
		if operator == "+" {
			return &String{Value: left.Inspect() + right.Inspect()}, nil
		}
	case SYMBOL_OBJ:
		if operator == "+" {
			return &Symbol{Name: left.Inspect() + right.Inspect()}, nil
		}
	}
	return nil, newError(TypeError, "unknown operator: %s %s %s", left.Type(), operator, right.Type())
}

func evalBitwiseOperator(operator string, l, r int64) Object {
	var v int64
	switch operator {
	case "&":
		v = l & r
	case "|":
		v = l | r
	case "^":
		v = l ^ r
	case "<<":
		v = l << uint64(r&63)
	case ">>":
		v = int64(uint64(l) >> uint64(r&63))
	}
	return &Integer{Value: v}
}

func evalIntegerOperator(operator string, l, r int64) (Object, error) {
	switch operator {
	case "+":
		return &Integer{Value: l + r}, nil
	case "-":
		return &Integer{Value: l - r}, nil
	case "*":
		return &Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(ArithmeticError, "division by zero")
		}
		return &Integer{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, newError(ArithmeticError, "division by zero")
		}
		return &Integer{Value: l % r}, nil
	}
	return nil, newError(TypeError, "unknown operator: INT %s INT", operator)
}

func evalFloatOperator(operator string, l, r float64) (Object, error) {
	switch operator {
	case "+":
		return &Float{Value: l + r}, nil
	case "-":
		return &Float{Value: l - r}, nil
	case "*":
		return &Float{Value: l * r}, nil
	case "/":
		return &Float{Value: l / r}, nil
	case "%":
		return &Float{Value: math.Mod(l, r)}, nil
	}
	return nil, newError(TypeError, "unknown operator: FLOAT %s FLOAT", operator)
}

// evalComparisonExpression evaluates every operand of a chain such as
// a < b <= c once, left to right, and is true when every pair holds.
func (e *Evaluator) evalComparisonExpression(node *ast.ComparisonExpression, scope *Scope) (Completion, error) {
	operands := make([]Object, len(node.Operands))
	for i, expr := range node.Operands {
		value, c, err := e.operand(expr, scope)
		if err != nil || c.Abrupt() {
			return c, err
		}
		operands[i] = value
	}

	result := true
	for i, operator := range node.Operators {
		holds, err := compare(operator, operands[i], operands[i+1])
		if err != nil {
			return Completion{}, err
		}
		result = result && holds
	}
	return normal(nativeBoolToInteger(result)), nil
}

func compare(operator string, left, right Object) (bool, error) {
	common, ok := CommonType(left.Type(), right.Type())
	if !ok {
		return false, newError(TypeError, "cannot compare %s and %s", left.Type(), right.Type())
	}

	var less, equal bool
	switch common {
	case INTEGER_OBJ:
		l, r := left.(*Integer).Value, right.(*Integer).Value
		less, equal = l < r, l == r
	case FLOAT_OBJ:
		l, _ := AsFloat(left)
		r, _ := AsFloat(right)
		less, equal = l < r, l == r
	case STRING_OBJ, SYMBOL_OBJ:
		l, r := left.Inspect(), right.Inspect()
		less, equal = l < r, l == r
	case NULL_OBJ:
		equal = left.Type() == NULL_OBJ && right.Type() == NULL_OBJ
		switch operator {
		case "==":
			return equal, nil
		case "!=":
			return !equal, nil
		}
		return false, newError(TypeError, "operator %s is not defined for NULL", operator)
	}

	switch operator {
	case "==":
		return equal, nil
	case "!=":
		return !equal, nil
	case "<":
		return less, nil
	case "<=":
		return less || equal, nil
	case ">":
		return !(less || equal), nil
	case ">=":
		return !less, nil
	}
	return false, newError(TypeError, "unknown comparison operator %s", operator)
}
