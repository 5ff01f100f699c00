package runtime

import (
	"fmt"

	"stela/interpreter-go/pkg/ast"
)

// ClassValue is a runtime handle onto an immutable class descriptor built
// by an external parser. It wraps the ast package's plain descriptor the
// same way a value elsewhere in this package wraps its type's static
// description, keeping ast free of any runtime import.
type ClassValue struct {
	Decl *ast.ClassDecl
}

func NewClassValue(decl *ast.ClassDecl) *ClassValue {
	return &ClassValue{Decl: decl}
}

func (v *ClassValue) Kind() Kind { return KindClass }

// Name is the class's declared name.
func (v *ClassValue) Name() string { return v.Decl.Name }

// GetMethod delegates to the wrapped descriptor's parent-chain lookup.
func (v *ClassValue) GetMethod(name string) *ast.MethodDecl {
	return v.Decl.GetMethod(name)
}

// ClassInstance is a live object: a non-owning reference to its class (the
// descriptor outlives every instance built from it) and an open, mutable
// field table.
type ClassInstance struct {
	Class  *ClassValue
	Fields *Closure
}

// NewClassInstance allocates an instance with an empty field table.
func NewClassInstance(class *ClassValue) *ClassInstance {
	return &ClassInstance{Class: class, Fields: NewClosure()}
}

func (v *ClassInstance) Kind() Kind { return KindClassInstance }

// HasMethod reports whether the instance's class resolves name to a method
// with exactly argc formal parameters.
func (v *ClassInstance) HasMethod(name string, argc int) bool {
	return v.Class.Decl.HasMethod(name, argc)
}

// Identity is a stable per-instance object identifier, used for the default
// ClassInstance print representation when the class defines no __str__.
func (v *ClassInstance) Identity() string {
	return fmt.Sprintf("%p", v)
}
