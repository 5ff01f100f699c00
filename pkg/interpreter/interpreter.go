package interpreter

import (
	"fmt"
	"log/slog"

	"stela/interpreter-go/pkg/ast"
	"stela/interpreter-go/pkg/runtime"
)

// Options configures an Interpreter. The embedder populates it and passes
// it to New; this package never reads configuration files or environment
// variables on its own (that belongs to the external collaborators named
// by the surface this module exposes).
type Options struct {
	// Logger, when non-nil, receives Debug-level tracing of class
	// registration and method dispatch. Nil disables tracing entirely.
	Logger *slog.Logger

	// MaxCallDepth bounds method-dispatch recursion. Zero means unlimited;
	// recursion depth in the AST otherwise corresponds directly to host
	// stack depth.
	MaxCallDepth int
}

// Interpreter executes statement and expression nodes built by an external
// parser. It carries no AST of its own; Execute is handed a root statement
// and a closure to run it against.
type Interpreter struct {
	logger       *slog.Logger
	maxCallDepth int
	callDepth    int
}

// New returns an Interpreter configured by opts.
func New(opts Options) *Interpreter {
	return &Interpreter{
		logger:       opts.Logger,
		maxCallDepth: opts.MaxCallDepth,
	}
}

// Execute runs root against closure and ctx, returning the statement's
// result handle.
func (i *Interpreter) Execute(root ast.Statement, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	return i.evaluateStatement(root, closure, ctx)
}

func (i *Interpreter) evaluateStatement(stmt ast.Statement, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	switch n := stmt.(type) {
	case *ast.Assignment:
		return i.evalAssignment(n, closure, ctx)
	case *ast.FieldAssignment:
		return i.evalFieldAssignment(n, closure, ctx)
	case *ast.Print:
		return i.evalPrint(n, closure, ctx)
	case *ast.IfElse:
		return i.evalIfElse(n, closure, ctx)
	case *ast.Compound:
		return i.evalCompound(n, closure, ctx)
	case *ast.Return:
		return i.evalReturn(n, closure, ctx)
	case *ast.ClassDefinition:
		return i.evalClassDefinition(n, closure, ctx)
	case *ast.MethodBody:
		return i.evalMethodBody(n, closure, ctx)
	default:
		return runtime.Handle{}, fmt.Errorf("interpreter: unsupported statement %T", stmt)
	}
}

func (i *Interpreter) evaluateExpression(expr ast.Expression, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	switch n := expr.(type) {
	case *ast.NoneLiteral:
		return runtime.HandleOwn(runtime.NoneValue{}), nil
	case *ast.NumberLiteral:
		return runtime.HandleOwn(runtime.NumberValue{Val: n.Value}), nil
	case *ast.StringLiteral:
		return runtime.HandleOwn(runtime.StringValue{Val: n.Value}), nil
	case *ast.BoolLiteral:
		return runtime.HandleOwn(runtime.BoolValue{Val: n.Value}), nil
	case *ast.VariableValue:
		return i.evalVariableValue(n, closure, ctx)
	case *ast.Add:
		return i.evalAdd(n, closure, ctx)
	case *ast.Sub:
		return i.evalArithmetic(n.Left, n.Right, closure, ctx, "Sub", func(a, b int) (int, error) { return a - b, nil })
	case *ast.Mult:
		return i.evalArithmetic(n.Left, n.Right, closure, ctx, "Mult", func(a, b int) (int, error) { return a * b, nil })
	case *ast.Div:
		return i.evalArithmetic(n.Left, n.Right, closure, ctx, "Div", func(a, b int) (int, error) {
			if b == 0 {
				return 0, &runtime.DivisionByZeroError{}
			}
			return a / b, nil
		})
	case *ast.Comparison:
		return i.evalComparison(n, closure, ctx)
	case *ast.Or:
		return i.evalOr(n, closure, ctx)
	case *ast.And:
		return i.evalAnd(n, closure, ctx)
	case *ast.Not:
		return i.evalNot(n, closure, ctx)
	case *ast.MethodCall:
		return i.evalMethodCall(n, closure, ctx)
	case *ast.NewInstance:
		return i.evalNewInstance(n, closure, ctx)
	case *ast.Stringify:
		return i.evalStringify(n, closure, ctx)
	default:
		return runtime.Handle{}, fmt.Errorf("interpreter: unsupported expression %T", expr)
	}
}

// dispatchMethod implements the method dispatch rule shared by MethodCall
// and the implicit calls from Add, comparisons, __str__, and __init__:
// resolve the method, build a fresh closure binding self (as a view) and
// the positional parameters, execute the body, then compute the result —
// the receiver's post-call self binding if the body rebound it to a
// different instance, otherwise the body's own result (a MethodBody
// already unwraps its return sentinel, so this call trusts that result
// directly rather than re-checking the sentinel itself).
func (i *Interpreter) dispatchMethod(receiver *runtime.ClassInstance, methodName string, args []runtime.Handle, ctx *Context) (runtime.Handle, error) {
	method := receiver.Class.GetMethod(methodName)
	if method == nil || len(method.Params) != len(args) {
		return runtime.Handle{}, &runtime.MethodNotFoundError{Class: receiver.Class.Name(), Method: methodName, Argc: len(args)}
	}

	if i.maxCallDepth > 0 && i.callDepth >= i.maxCallDepth {
		return runtime.Handle{}, fmt.Errorf("interpreter: max call depth %d exceeded calling %s", i.maxCallDepth, methodName)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	if i.logger != nil {
		i.logger.Debug("dispatch method", "class", receiver.Class.Name(), "method", methodName, "argc", len(args))
	}

	methodClosure := runtime.NewClosure()
	methodClosure.Insert("self", runtime.HandleView(receiver))
	for idx, param := range method.Params {
		methodClosure.Insert(param, args[idx])
	}

	result, err := i.evaluateStatement(method.Body, methodClosure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}

	selfAfter, _ := methodClosure.Lookup("self")
	if reboundInstance, ok := runtime.TryAs[*runtime.ClassInstance](selfAfter); ok && reboundInstance != receiver {
		return selfAfter, nil
	}
	return result, nil
}
