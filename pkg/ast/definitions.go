package ast

// MethodDecl is one method of a class: its name, its formal parameter
// names excluding self, and its owned body statement.
type MethodDecl struct {
	Name   string
	Params []string
	Body   Statement
}

func NewMethodDecl(name string, params []string, body Statement) *MethodDecl {
	return &MethodDecl{Name: name, Params: params, Body: body}
}

// ClassDecl is an immutable class descriptor: a name, an ordered list of
// methods, and an optional parent for single inheritance. It is not an ast
// Node — ClassDefinition (a Statement) and NewInstance (an Expression)
// both hold a *ClassDecl, keeping descriptors a plain data boundary that a
// runtime class value can wrap without this package importing runtime.
type ClassDecl struct {
	Name    string
	Methods []*MethodDecl
	Parent  *ClassDecl

	byName map[string]*MethodDecl
}

// NewClassDecl builds a descriptor and its name→method accelerator.
// Constructing with a parent already in the chain that loops back to this
// class would violate the no-cycles invariant; the external builder is
// responsible for rejecting that before calling here.
func NewClassDecl(name string, methods []*MethodDecl, parent *ClassDecl) *ClassDecl {
	c := &ClassDecl{Name: name, Parent: parent}
	c.SetMethods(methods)
	return c
}

// SetMethods (re-)installs methods and rebuilds the name→method
// accelerator. This is how a builder constructs a class whose own methods
// instantiate itself: allocate the descriptor with NewClassDecl(name, nil,
// parent), hand its pointer to the method bodies being built, then call
// SetMethods once those bodies exist. A descriptor is only truly immutable
// once its builder stops calling SetMethods on it.
func (c *ClassDecl) SetMethods(methods []*MethodDecl) {
	byName := make(map[string]*MethodDecl, len(methods))
	for _, m := range methods {
		if _, exists := byName[m.Name]; !exists {
			byName[m.Name] = m
		}
	}
	c.Methods = methods
	c.byName = byName
}

// GetMethod returns the first method named name found walking this class
// and then its parent chain, or nil if none defines it.
func (c *ClassDecl) GetMethod(name string) *MethodDecl {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.byName[name]; ok {
			return m
		}
	}
	return nil
}

// HasMethod reports whether GetMethod(name) succeeds with exactly argc
// formal parameters.
func (c *ClassDecl) HasMethod(name string, argc int) bool {
	m := c.GetMethod(name)
	return m != nil && len(m.Params) == argc
}
