package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Binding strength of each node kind, higher binds tighter. The levels
// mirror the parser's table.
const (
	precOpen    = 1 // if, while, for, lambda, var, return: extend to the right
	precAssign  = 2
	precBitOr   = 3
	precBitXor  = 4
	precBitAnd  = 5
	precCompare = 6
	precShift   = 7
	precSum     = 8
	precProduct = 9
	precPrefix  = 10
	precCall    = 11
)

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"<<": precShift,
	">>": precShift,
	"+":  precSum,
	"-":  precSum,
	"*":  precProduct,
	"/":  precProduct,
	"%":  precProduct,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return precCall
}

// precedenceOf reports how tightly expr holds together when it is printed
// without parentheses.
func precedenceOf(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.InfixExpression:
		return getPrecedence(e.Operator)
	case *ast.ComparisonExpression:
		return precCompare
	case *ast.AssignExpression:
		return precAssign
	case *ast.PrefixExpression, *ast.BreakExpression, *ast.ContinueExpression:
		return precPrefix
	case *ast.IfExpression, *ast.WhileExpression, *ast.ForExpression,
		*ast.FunctionLiteral, *ast.VarDeclaration, *ast.ReturnExpression:
		return precOpen
	}
	return precCall
}

type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Format renders node as Phi source.
func Format(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	prec := precedenceOf(expr)
	// All binary operators are left-associative; an equal level on the
	// right needs grouping.
	needParens := prec < parentPrec || (prec == parentPrec && isRight && prec != precAssign)
	if needParens {
		p.write("(")
	}
	expr.Accept(p)
	if needParens {
		p.write(")")
	}
}

// fits reports whether fn's output stays on the current line.
func (p *CodePrinter) fits(fn func(*CodePrinter)) bool {
	if p.lineWidth <= 0 {
		return true
	}
	trial := &CodePrinter{indent: p.indent, lineWidth: 0, column: p.column}
	fn(trial)
	out := trial.String()
	return !strings.Contains(out, "\n") && p.column+len(out) <= p.lineWidth
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

// writeSequence prints expressions one per line. Separators go between
// them so that a line starting with ( [ or - never continues the previous one.
func (p *CodePrinter) writeSequence(exprs []ast.Expression) {
	for i, expr := range exprs {
		p.writeIndent()
		p.printExpr(expr, 0, false)
		if i < len(exprs)-1 {
			p.write(";")
		}
		p.writeln()
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	p.writeSequence(n.Expressions)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	if n == nil {
		p.write("nil")
		return
	}
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	if n.Token.Lexeme != "" {
		p.write(n.Token.Lexeme)
		return
	}
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	if n.Token.Lexeme != "" {
		p.write(n.Token.Lexeme)
		return
	}
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	p.write(s)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	if strings.HasPrefix(n.Token.Lexeme, `"`) {
		p.write(n.Token.Lexeme)
		return
	}
	p.write(quote(n.Value))
}

// quote renders s as a string literal the lexer reads back unchanged.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	switch n.Operator {
	case "new":
		p.write("new ")
	default:
		p.write(n.Operator)
	}
	p.printExpr(n.Right, precPrefix, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	prec := getPrecedence(n.Operator)
	p.printExpr(n.Left, prec, false)
	p.write(" " + n.Operator + " ")
	p.printExpr(n.Right, prec, true)
}

func (p *CodePrinter) VisitComparisonExpression(n *ast.ComparisonExpression) {
	for i, operand := range n.Operands {
		if i > 0 {
			p.write(" " + n.Operators[i-1] + " ")
		}
		// A nested chain would merge into this one.
		p.printExpr(operand, precCompare, true)
	}
}

func (p *CodePrinter) VisitAssignExpression(n *ast.AssignExpression) {
	p.printExpr(n.Left, precCall, false)
	p.write(" = ")
	p.printExpr(n.Value, 0, true)
}

func (p *CodePrinter) VisitVarDeclaration(n *ast.VarDeclaration) {
	if n.Token.Type == token.FUNCTION && len(n.Entries) == 1 && n.Entries[0].IsFunction() {
		p.writeEntry(n.Entries[0])
		return
	}
	p.write("var ")
	for i, entry := range n.Entries {
		if i > 0 {
			p.write(", ")
		}
		p.writeEntry(entry)
	}
}

// writeEntry prints one member of a declaration list.
func (p *CodePrinter) writeEntry(entry *ast.Entry) {
	if entry.IsFunction() {
		fn := entry.Value.(*ast.FunctionLiteral)
		p.write("function ")
		p.printExpr(entry.Name, precCall, false)
		p.writeFunctionRest(fn)
		return
	}
	if entry.Value == nil {
		// an assignment here would read as a named entry
		p.printExpr(entry.Name, precBitOr, false)
		return
	}
	p.printExpr(entry.Name, precCall, false)
	p.write(" = ")
	p.printExpr(entry.Value, 0, true)
}

// writeEntries prints a delimited declaration list, one entry per line when
// it does not fit or declares functions.
func (p *CodePrinter) writeEntries(open, close string, entries []*ast.Entry) {
	multiline := false
	for _, entry := range entries {
		if entry.IsFunction() {
			multiline = true
		}
	}
	if !multiline && len(entries) > 0 {
		multiline = !p.fits(func(q *CodePrinter) { q.writeFlatEntries(open, close, entries) })
	}
	if !multiline {
		p.writeFlatEntries(open, close, entries)
		return
	}

	p.write(open)
	p.writeln()
	p.indent++
	for i, entry := range entries {
		p.writeIndent()
		p.writeEntry(entry)
		if i < len(entries)-1 {
			p.write(",")
		}
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write(close)
}

func (p *CodePrinter) writeFlatEntries(open, close string, entries []*ast.Entry) {
	p.write(open)
	for i, entry := range entries {
		if i > 0 {
			p.write(", ")
		}
		p.writeEntry(entry)
	}
	p.write(close)
}

func (p *CodePrinter) writeFunctionRest(fn *ast.FunctionLiteral) {
	p.writeFlatEntries("(", ")", fn.Parameters)
	p.write(" ")
	p.printExpr(fn.Body, 0, true)
}

func (p *CodePrinter) VisitFunctionLiteral(n *ast.FunctionLiteral) {
	p.write("lambda")
	p.writeFunctionRest(n)
}

func (p *CodePrinter) VisitCollectionLiteral(n *ast.CollectionLiteral) {
	p.writeEntries("[", "]", n.Entries)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printExpr(n.Function, precCall, false)
	p.writeEntries("(", ")", n.Arguments)
}

func (p *CodePrinter) VisitMemberExpression(n *ast.MemberExpression) {
	p.printExpr(n.Left, precCall, false)
	p.write(".")
	if n.Member != nil {
		p.write(n.Member.Value)
	} else {
		p.write("<???>")
	}
}

func (p *CodePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	p.printExpr(n.Left, precCall, false)
	p.write("[")
	p.printExpr(n.Index, 0, false)
	p.write("]")
}

func (p *CodePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	if len(n.Expressions) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	p.writeSequence(n.Expressions)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("if ")
	p.printExpr(n.Condition, 0, false)
	p.write(" then ")
	if n.Alternative == nil {
		p.printExpr(n.Consequence, 0, true)
		return
	}
	// An open consequence would swallow the else.
	p.printExpr(n.Consequence, precAssign, false)
	p.write(" else ")
	p.printExpr(n.Alternative, 0, true)
}

func (p *CodePrinter) VisitWhileExpression(n *ast.WhileExpression) {
	p.write("while ")
	p.printExpr(n.Condition, 0, false)
	p.write(" do ")
	p.printExpr(n.Body, 0, true)
}

func (p *CodePrinter) VisitForExpression(n *ast.ForExpression) {
	p.write("for ")
	p.printExpr(n.Init, 0, false)
	p.write("; ")
	p.printExpr(n.Condition, 0, false)
	p.write("; ")
	p.printExpr(n.Update, 0, false)
	p.write(" do ")
	p.printExpr(n.Body, 0, true)
}

func (p *CodePrinter) writeExit(keyword string, value ast.Expression) {
	p.write(keyword)
	if value != nil {
		p.write("(")
		p.printExpr(value, 0, false)
		p.write(")")
	}
}

func (p *CodePrinter) VisitBreakExpression(n *ast.BreakExpression) {
	p.writeExit("break", n.Value)
}

func (p *CodePrinter) VisitContinueExpression(n *ast.ContinueExpression) {
	p.writeExit("continue", n.Value)
}

func (p *CodePrinter) VisitReturnExpression(n *ast.ReturnExpression) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		p.printExpr(n.Value, 0, true)
	}
}
