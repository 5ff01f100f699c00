package interpreter

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stela/interpreter-go/pkg/ast"
	"stela/interpreter-go/pkg/runtime"
)

func run(t *testing.T, root ast.Statement) string {
	t.Helper()
	var out bytes.Buffer
	interp := New(Options{})
	closure := runtime.NewClosure()
	if _, err := interp.Execute(root, closure, NewContext(&out)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return out.String()
}

func TestStringConcatenation(t *testing.T) {
	// print 'hello' + ' ' + 'world'
	expr := ast.NewAdd(
		ast.NewAdd(ast.NewStringLiteral("hello"), ast.NewStringLiteral(" ")),
		ast.NewStringLiteral("world"),
	)
	got := run(t, ast.NewPrint(expr))
	if diff := cmp.Diff("hello world\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestArithmeticPrecedenceFromHandBuiltAST(t *testing.T) {
	// Add(Number 1, Mult(Number 2, Number 3))
	expr := ast.NewAdd(ast.NewNumberLiteral(1), ast.NewMult(ast.NewNumberLiteral(2), ast.NewNumberLiteral(3)))
	got := run(t, ast.NewPrint(expr))
	if diff := cmp.Diff("7\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestClassWithMethod(t *testing.T) {
	barkBody := ast.NewMethodBody(ast.NewCompound(ast.NewPrint(ast.NewStringLiteral("woof"))))
	bark := ast.NewMethodDecl("bark", nil, barkBody)
	dog := ast.NewClassDecl("Dog", []*ast.MethodDecl{bark}, nil)

	root := ast.NewCompound(
		ast.NewAssignment("d", ast.NewNewInstance(dog)),
		ast.NewAssignment("_", ast.NewMethodCall(ast.NewVariableValue("d"), "bark")),
	)
	got := run(t, root)
	if diff := cmp.Diff("woof\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestInheritanceAndOverride(t *testing.T) {
	whoABody := ast.NewMethodBody(ast.NewCompound(ast.NewPrint(ast.NewStringLiteral("A"))))
	whoA := ast.NewMethodDecl("who", nil, whoABody)
	classA := ast.NewClassDecl("A", []*ast.MethodDecl{whoA}, nil)

	whoBBody := ast.NewMethodBody(ast.NewCompound(ast.NewPrint(ast.NewStringLiteral("B"))))
	whoB := ast.NewMethodDecl("who", nil, whoBBody)
	classB := ast.NewClassDecl("B", []*ast.MethodDecl{whoB}, classA)

	root := ast.NewCompound(
		ast.NewAssignment("_", ast.NewMethodCall(ast.NewNewInstance(classB), "who")),
		ast.NewAssignment("_", ast.NewMethodCall(ast.NewNewInstance(classA), "who")),
	)
	got := run(t, root)
	if diff := cmp.Diff("B\nA\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestEarlyReturnThroughNestedIf(t *testing.T) {
	ifNeg := ast.NewIfElse(
		ast.NewComparison(ast.Less, ast.NewVariableValue("x"), ast.NewNumberLiteral(0)),
		ast.NewReturn(ast.NewStringLiteral("neg")),
		nil,
	)
	ifZero := ast.NewIfElse(
		ast.NewComparison(ast.Equal, ast.NewVariableValue("x"), ast.NewNumberLiteral(0)),
		ast.NewReturn(ast.NewStringLiteral("zero")),
		nil,
	)
	fBody := ast.NewMethodBody(ast.NewCompound(ifNeg, ifZero, ast.NewReturn(ast.NewStringLiteral("pos"))))
	fMethod := ast.NewMethodDecl("f", []string{"x"}, fBody)
	classC := ast.NewClassDecl("C", []*ast.MethodDecl{fMethod}, nil)

	call := func(n int) ast.Expression {
		return ast.NewMethodCall(ast.NewNewInstance(classC), "f", ast.NewNumberLiteral(n))
	}
	root := ast.NewPrint(call(-5), call(0), call(3))
	got := run(t, root)
	if diff := cmp.Diff("neg zero pos\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestOperatorOverloading(t *testing.T) {
	// class V:
	//   def __init__(self, x): self.x = x
	//   def __add__(self, o): r = V(self.x + o.x); return r
	//   def __str__(self): return str(self.x)
	classV := ast.NewClassDecl("V", nil, nil)

	initBody := ast.NewMethodBody(ast.NewCompound(
		ast.NewFieldAssignment(ast.NewVariableValue("self"), "x", ast.NewVariableValue("x")),
	))
	init := ast.NewMethodDecl("__init__", []string{"x"}, initBody)

	sumExpr := ast.NewAdd(ast.NewVariableValue("self", "x"), ast.NewVariableValue("o", "x"))
	addBody := ast.NewMethodBody(ast.NewCompound(
		ast.NewAssignment("r", ast.NewNewInstance(classV, sumExpr)),
		ast.NewReturn(ast.NewVariableValue("r")),
	))
	add := ast.NewMethodDecl("__add__", []string{"o"}, addBody)

	strBody := ast.NewMethodBody(ast.NewCompound(
		ast.NewReturn(ast.NewStringify(ast.NewVariableValue("self", "x"))),
	))
	str := ast.NewMethodDecl("__str__", nil, strBody)

	classV.SetMethods([]*ast.MethodDecl{init, add, str})

	expr := ast.NewAdd(ast.NewNewInstance(classV, ast.NewNumberLiteral(2)), ast.NewNewInstance(classV, ast.NewNumberLiteral(40)))
	got := run(t, ast.NewPrint(expr))
	if diff := cmp.Diff("42\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestPrintNoneLiteral(t *testing.T) {
	got := run(t, ast.NewPrint(ast.NewNoneLiteral()))
	if diff := cmp.Diff("None\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestDivisionByZero(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{})
	closure := runtime.NewClosure()
	_, err := interp.Execute(ast.NewPrint(ast.NewDiv(ast.NewNumberLiteral(5), ast.NewNumberLiteral(0))), closure, NewContext(&out))
	if err == nil {
		t.Fatalf("expected DivisionByZeroError")
	}
	if _, ok := err.(*runtime.DivisionByZeroError); !ok {
		t.Fatalf("expected *runtime.DivisionByZeroError, got %T", err)
	}
}

func TestDerivedComparisons(t *testing.T) {
	interp := New(Options{})
	closure := runtime.NewClosure()
	ctx := NewContext(&bytes.Buffer{})

	a, b := ast.NewNumberLiteral(3), ast.NewNumberLiteral(5)
	notEqual, err := interp.evaluateExpression(ast.NewComparison(ast.NotEqual, a, b), closure, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equal, err := interp.evaluateExpression(ast.NewComparison(ast.Equal, a, b), closure, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runtime.IsTrue(notEqual) == runtime.IsTrue(equal) {
		t.Fatalf("NotEqual must be the negation of Equal")
	}

	greaterOrEqual, err := interp.evaluateExpression(ast.NewComparison(ast.GreaterOrEqual, a, b), closure, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	less, err := interp.evaluateExpression(ast.NewComparison(ast.Less, a, b), closure, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runtime.IsTrue(greaterOrEqual) == runtime.IsTrue(less) {
		t.Fatalf("GreaterOrEqual must be the negation of Less")
	}
}

func TestMethodResolutionPrefersOwnClass(t *testing.T) {
	parentBody := ast.NewMethodBody(ast.NewCompound(ast.NewReturn(ast.NewStringLiteral("parent"))))
	parentM := ast.NewMethodDecl("m", nil, parentBody)
	parent := ast.NewClassDecl("P", []*ast.MethodDecl{parentM}, nil)

	childBody := ast.NewMethodBody(ast.NewCompound(ast.NewReturn(ast.NewStringLiteral("child"))))
	childM := ast.NewMethodDecl("m", nil, childBody)
	child := ast.NewClassDecl("C", []*ast.MethodDecl{childM}, parent)

	got := run(t, ast.NewPrint(ast.NewMethodCall(ast.NewNewInstance(child), "m")))
	if diff := cmp.Diff("child\n", got); diff != "" {
		t.Fatalf("output mismatch:\n%s", diff)
	}
}

func TestUnknownVariableError(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{})
	closure := runtime.NewClosure()
	_, err := interp.Execute(ast.NewPrint(ast.NewVariableValue("nope")), closure, NewContext(&out))
	if _, ok := err.(*runtime.UnknownVariableError); !ok {
		t.Fatalf("expected *runtime.UnknownVariableError, got %T (%v)", err, err)
	}
}

func TestMethodNotFoundArityMismatch(t *testing.T) {
	body := ast.NewMethodBody(ast.NewCompound())
	m := ast.NewMethodDecl("f", []string{"x"}, body)
	class := ast.NewClassDecl("K", []*ast.MethodDecl{m}, nil)

	root := ast.NewAssignment("_", ast.NewMethodCall(ast.NewNewInstance(class), "f"))
	var out bytes.Buffer
	interp := New(Options{})
	closure := runtime.NewClosure()
	_, err := interp.Execute(root, closure, NewContext(&out))
	if _, ok := err.(*runtime.MethodNotFoundError); !ok {
		t.Fatalf("expected *runtime.MethodNotFoundError, got %T (%v)", err, err)
	}
}
