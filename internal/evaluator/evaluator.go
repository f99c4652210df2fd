package evaluator

import (
	"context"

	"github.com/pkg/errors"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/config"
)

type Evaluator struct {
	// Context for cancellation
	Context context.Context

	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{Context: context.Background()}
}

// Run evaluates a program in scope and returns its value: the value of the
// last expression, or the value of a top-level return.
func (e *Evaluator) Run(program *ast.Program, scope *Scope) (Object, error) {
	c, err := e.Eval(program, scope)
	if err != nil {
		return nil, err
	}
	return c.Value, nil
}

func (e *Evaluator) Eval(node ast.Node, scope *Scope) (Completion, error) {
	e.evalDepth++
	defer func() { e.evalDepth-- }()

	if e.evalDepth > config.MaxEvalDepth {
		return Completion{}, e.positioned(newError(ControlError, "maximum recursion depth exceeded"), node)
	}

	// Check for cancellation
	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return Completion{}, e.positioned(newError(ControlError, "execution cancelled: %v", e.Context.Err()), node)
		default:
		}
	}

	c, err := e.evalCore(node, scope)
	if err != nil {
		return c, e.positioned(err, node)
	}
	return c, nil
}

// positioned stamps the location of node on err unless an inner expression
// already did.
func (e *Evaluator) positioned(err error, node ast.Node) error {
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Line == 0 && node != nil {
		if provider, ok := node.(ast.TokenProvider); ok {
			tok := provider.GetToken()
			rerr.Line = tok.Line
			rerr.Column = tok.Column
		}
	}
	return err
}

func (e *Evaluator) evalCore(node ast.Node, scope *Scope) (Completion, error) {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, scope)

	// Literals
	case *ast.IntegerLiteral:
		return normal(&Integer{Value: node.Value}), nil
	case *ast.FloatLiteral:
		return normal(&Float{Value: node.Value}), nil
	case *ast.StringLiteral:
		return normal(&String{Value: node.Value}), nil
	case *ast.BooleanLiteral:
		return normal(nativeBoolToInteger(node.Value)), nil
	case *ast.NullLiteral:
		return normal(NULL), nil
	case *ast.Identifier:
		return normal(&Symbol{Name: node.Value}), nil
	case *ast.FunctionLiteral:
		return e.evalFunctionLiteral(node, scope)
	case *ast.CollectionLiteral:
		return e.evalCollectionLiteral(node, scope)

	// Operators
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, scope)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, scope)
	case *ast.ComparisonExpression:
		return e.evalComparisonExpression(node, scope)

	// Access
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, scope)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, scope)
	case *ast.CallExpression:
		return e.evalCallExpression(node, scope)

	// Declarations
	case *ast.AssignExpression:
		return e.evalAssignExpression(node, scope)
	case *ast.VarDeclaration:
		return e.evalVarDeclaration(node, scope)

	// Control flow
	case *ast.BlockExpression:
		return e.evalBlockExpression(node, scope)
	case *ast.IfExpression:
		return e.evalIfExpression(node, scope)
	case *ast.WhileExpression:
		return e.evalWhileExpression(node, scope)
	case *ast.ForExpression:
		return e.evalForExpression(node, scope)
	case *ast.BreakExpression:
		return e.evalExit(Break, node.Value, scope)
	case *ast.ContinueExpression:
		return e.evalExit(Continue, node.Value, scope)
	case *ast.ReturnExpression:
		return e.evalExit(Return, node.Value, scope)
	}

	return Completion{}, newError(TypeError, "cannot evaluate %T", node)
}

// operand evaluates node in value position. The result of a reference
// expression is bound and dereferenced exactly once; every other result is
// already a value, including symbols produced by operators or read back by
// an assignment. An abrupt completion is handed back for the caller to
// propagate.
func (e *Evaluator) operand(node ast.Expression, scope *Scope) (Object, Completion, error) {
	c, err := e.Eval(node, scope)
	if err != nil || c.Abrupt() {
		return nil, c, err
	}
	if !isReference(node) {
		return c.Value, c, nil
	}
	value, err := BindAndLookUp(c.Value, scope)
	if err != nil {
		return nil, c, e.positioned(err, node)
	}
	return value, c, nil
}

// isReference reports whether node evaluates to a symbol naming a storage
// location rather than to a value.
func isReference(node ast.Expression) bool {
	switch n := node.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		return true
	case *ast.PrefixExpression:
		return n.Operator == "'"
	}
	return false
}

func (e *Evaluator) evalProgram(program *ast.Program, scope *Scope) (Completion, error) {
	var result Object = NULL

	for i, expr := range program.Expressions {
		value, c, err := e.statement(expr, scope, i == len(program.Expressions)-1)
		if err != nil {
			return c, err
		}
		switch c.Kind {
		case Return:
			return normal(c.Value), nil
		case Break, Continue:
			return Completion{}, e.positioned(newError(ControlError, "%s outside of a loop", c.Kind), expr)
		}
		result = value
	}

	return normal(result), nil
}

// statement evaluates one expression of a sequence. Only the last one
// produces the sequence's value, so earlier results are not dereferenced.
func (e *Evaluator) statement(node ast.Expression, scope *Scope, last bool) (Object, Completion, error) {
	if last {
		return e.operand(node, scope)
	}
	c, err := e.Eval(node, scope)
	if err != nil || c.Abrupt() {
		return nil, c, err
	}
	return NULL, c, nil
}

// Call invokes fn with the positional and named arguments in args.
func (e *Evaluator) Call(fn Object, args *Collection) (Object, error) {
	function, ok := fn.(*Function)
	if !ok {
		return nil, newError(TypeError, "%s is not callable", fn.Type())
	}

	scope, err := function.Parameters.SupplyParameters(args, function.Scope)
	if err != nil {
		return nil, err
	}

	value, c, err := e.operand(function.Body, scope)
	if err != nil {
		return nil, err
	}
	switch c.Kind {
	case Return:
		return c.Value, nil
	case Break, Continue:
		return nil, newError(ControlError, "%s outside of a loop", c.Kind)
	}
	return value, nil
}
