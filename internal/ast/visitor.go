package ast

// Visitor is implemented by tree consumers that dispatch on node kind
// through Accept, such as the code printer.
type Visitor interface {
	VisitProgram(n *Program)
	VisitIdentifier(n *Identifier)
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitFloatLiteral(n *FloatLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitPrefixExpression(n *PrefixExpression)
	VisitInfixExpression(n *InfixExpression)
	VisitComparisonExpression(n *ComparisonExpression)
	VisitAssignExpression(n *AssignExpression)
	VisitVarDeclaration(n *VarDeclaration)
	VisitFunctionLiteral(n *FunctionLiteral)
	VisitCollectionLiteral(n *CollectionLiteral)
	VisitCallExpression(n *CallExpression)
	VisitMemberExpression(n *MemberExpression)
	VisitIndexExpression(n *IndexExpression)
	VisitBlockExpression(n *BlockExpression)
	VisitIfExpression(n *IfExpression)
	VisitWhileExpression(n *WhileExpression)
	VisitForExpression(n *ForExpression)
	VisitBreakExpression(n *BreakExpression)
	VisitContinueExpression(n *ContinueExpression)
	VisitReturnExpression(n *ReturnExpression)
}

// Inspect calls fn for node and, while fn returns true, for each of its
// descendants in evaluation order.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.Children() {
		Inspect(child, fn)
	}
}
