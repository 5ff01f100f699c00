// Package ast defines the node types and constructors an external parser
// uses to build trees of executable statements and expressions. Nothing in
// this package parses source text; it is the boundary surface a parser
// builds against and tests construct by hand.
package ast

type NodeType string

const (
	NodeNoneLiteral     NodeType = "NoneLiteral"
	NodeNumberLiteral   NodeType = "NumberLiteral"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeBoolLiteral     NodeType = "BoolLiteral"
	NodeVariableValue   NodeType = "VariableValue"
	NodeAdd             NodeType = "Add"
	NodeSub             NodeType = "Sub"
	NodeMult            NodeType = "Mult"
	NodeDiv             NodeType = "Div"
	NodeComparison      NodeType = "Comparison"
	NodeOr              NodeType = "Or"
	NodeAnd             NodeType = "And"
	NodeNot             NodeType = "Not"
	NodeMethodCall      NodeType = "MethodCall"
	NodeNewInstance     NodeType = "NewInstance"
	NodeStringify       NodeType = "Stringify"
	NodeAssignment      NodeType = "Assignment"
	NodeFieldAssignment NodeType = "FieldAssignment"
	NodePrint           NodeType = "Print"
	NodeIfElse          NodeType = "IfElse"
	NodeCompound        NodeType = "Compound"
	NodeReturn          NodeType = "Return"
	NodeClassDefinition NodeType = "ClassDefinition"
	NodeMethodBody      NodeType = "MethodBody"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Comparator names the six comparison operators Comparison may apply.
// Only Equal and Less are ever dispatched to a dunder method; the other
// four are derived from those two (see Comparison's evaluator).
type Comparator string

const (
	Equal          Comparator = "Equal"
	NotEqual       Comparator = "NotEqual"
	Less           Comparator = "Less"
	LessOrEqual    Comparator = "LessOrEqual"
	Greater        Comparator = "Greater"
	GreaterOrEqual Comparator = "GreaterOrEqual"
)

// Literals

type NoneLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{nodeImpl: newNodeImpl(NodeNoneLiteral)}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value int
}

func NewNumberLiteral(value int) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BoolLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBoolLiteral), Value: value}
}

// VariableValue reads a name, optionally walking field accesses:
// DottedIds[0] is looked up in the closure; each subsequent id requires the
// current value to be a ClassInstance and reads that field.
type VariableValue struct {
	nodeImpl
	expressionMarker

	DottedIds []string
}

func NewVariableValue(dottedIds ...string) *VariableValue {
	return &VariableValue{nodeImpl: newNodeImpl(NodeVariableValue), DottedIds: dottedIds}
}

// Arithmetic

type Add struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewAdd(left, right Expression) *Add {
	return &Add{nodeImpl: newNodeImpl(NodeAdd), Left: left, Right: right}
}

type Sub struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewSub(left, right Expression) *Sub {
	return &Sub{nodeImpl: newNodeImpl(NodeSub), Left: left, Right: right}
}

type Mult struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewMult(left, right Expression) *Mult {
	return &Mult{nodeImpl: newNodeImpl(NodeMult), Left: left, Right: right}
}

type Div struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewDiv(left, right Expression) *Div {
	return &Div{nodeImpl: newNodeImpl(NodeDiv), Left: left, Right: right}
}

// Comparison produces a Bool per Cmp; NotEqual/Greater/LessOrEqual/
// GreaterOrEqual are derived by the evaluator from Equal and Less.
type Comparison struct {
	nodeImpl
	expressionMarker

	Cmp         Comparator
	Left, Right Expression
}

func NewComparison(cmp Comparator, left, right Expression) *Comparison {
	return &Comparison{nodeImpl: newNodeImpl(NodeComparison), Cmp: cmp, Left: left, Right: right}
}

// Logical

type Or struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewOr(left, right Expression) *Or {
	return &Or{nodeImpl: newNodeImpl(NodeOr), Left: left, Right: right}
}

type And struct {
	nodeImpl
	expressionMarker

	Left, Right Expression
}

func NewAnd(left, right Expression) *And {
	return &And{nodeImpl: newNodeImpl(NodeAnd), Left: left, Right: right}
}

type Not struct {
	nodeImpl
	expressionMarker

	Operand Expression
}

func NewNot(operand Expression) *Not {
	return &Not{nodeImpl: newNodeImpl(NodeNot), Operand: operand}
}

// MethodCall evaluates Object (must be a ClassInstance), evaluates each Arg
// left to right, then dispatches Method against the receiver.
type MethodCall struct {
	nodeImpl
	expressionMarker

	Object Expression
	Method string
	Args   []Expression
}

func NewMethodCall(object Expression, method string, args ...Expression) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall), Object: object, Method: method, Args: args}
}

// NewInstance allocates an instance of Class and, if Class defines
// __init__ with matching arity, dispatches it with Args.
type NewInstance struct {
	nodeImpl
	expressionMarker

	Class *ClassDecl
	Args  []Expression
}

func NewNewInstance(class *ClassDecl, args ...Expression) *NewInstance {
	return &NewInstance{nodeImpl: newNodeImpl(NodeNewInstance), Class: class, Args: args}
}

// Stringify is the str(...) expression.
type Stringify struct {
	nodeImpl
	expressionMarker

	Arg Expression
}

func NewStringify(arg Expression) *Stringify {
	return &Stringify{nodeImpl: newNodeImpl(NodeStringify), Arg: arg}
}

// Statements

type Assignment struct {
	nodeImpl
	statementMarker

	Var string
	Rhs Expression
}

func NewAssignment(varName string, rhs Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Var: varName, Rhs: rhs}
}

// FieldAssignment writes Rhs into the field named Field of the instance
// that ObjectRef (all of its dotted ids) resolves to.
type FieldAssignment struct {
	nodeImpl
	statementMarker

	ObjectRef *VariableValue
	Field     string
	Rhs       Expression
}

func NewFieldAssignment(objectRef *VariableValue, field string, rhs Expression) *FieldAssignment {
	return &FieldAssignment{nodeImpl: newNodeImpl(NodeFieldAssignment), ObjectRef: objectRef, Field: field, Rhs: rhs}
}

type Print struct {
	nodeImpl
	statementMarker

	Args []Expression
}

func NewPrint(args ...Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Args: args}
}

type IfElse struct {
	nodeImpl
	statementMarker

	Cond Expression
	Then Statement
	Else Statement
}

func NewIfElse(cond Expression, then Statement, els Statement) *IfElse {
	return &IfElse{nodeImpl: newNodeImpl(NodeIfElse), Cond: cond, Then: then, Else: els}
}

// Compound runs Stmts in order, stopping early once a return has fired
// somewhere within them (checked after each statement via the closure's
// return sentinel).
type Compound struct {
	nodeImpl
	statementMarker

	Stmts []Statement
}

func NewCompound(stmts ...Statement) *Compound {
	return &Compound{nodeImpl: newNodeImpl(NodeCompound), Stmts: stmts}
}

type Return struct {
	nodeImpl
	statementMarker

	Expr Expression
}

func NewReturn(expr Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Expr: expr}
}

// ClassDefinition binds Class's name to Class in the current closure.
type ClassDefinition struct {
	nodeImpl
	statementMarker

	Class *ClassDecl
}

func NewClassDefinition(class *ClassDecl) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), Class: class}
}

// MethodBody runs Body and converts whatever the body left in the return
// sentinel into the body's result; this is the only node that consumes it.
type MethodBody struct {
	nodeImpl
	statementMarker

	Body Statement
}

func NewMethodBody(body Statement) *MethodBody {
	return &MethodBody{nodeImpl: newNodeImpl(NodeMethodBody), Body: body}
}
