// Package ast extracts the declaration-level shape of TypeScript
// compilation units using tree-sitter: imports, class declarations with
// their decorators, constructor parameters and heritage clauses, and
// interface declarations. Statement bodies are never inspected.
package ast

import "github.com/archlens/ngraph/pkg/model"

// SourceFile is the extracted shape of one compilation unit.
type SourceFile struct {
	Path       string // project-relative, forward slashes
	Imports    []Import
	Classes    []Class
	Interfaces []Interface
}

// Import is a top-level import statement with a literal module specifier.
type Import struct {
	Specifier string
}

// Class is a top-level class-like declaration.
type Class struct {
	Name       string
	Decorators []Decorator
	Params     []Param  // constructor parameters, in order
	Implements []string // implemented type texts, in order
}

// Decorator is one annotation attached to a class. Object holds the first
// object-literal argument when present; a bare marker has none.
type Decorator struct {
	Name   string
	Object *ObjectLiteral
}

// ObjectLiteral preserves the properties of a decorator's object argument
// in declaration order.
type ObjectLiteral struct {
	Props []Property
}

// Property is one key/value entry of an object literal.
type Property struct {
	Key   string
	Value model.Value
}

// Get returns the value for a key.
func (o *ObjectLiteral) Get(key string) (model.Value, bool) {
	if o == nil {
		return model.Value{}, false
	}
	for _, p := range o.Props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return model.Value{}, false
}

// Param is one constructor parameter. Type is the source text of the
// declared type annotation, empty when the parameter is untyped.
type Param struct {
	Name string
	Type string
}

// Interface is a top-level interface declaration.
type Interface struct {
	Name string
}
