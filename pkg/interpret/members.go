package interpret

import (
	"github.com/archlens/ngraph/pkg/ast"
	"github.com/archlens/ngraph/pkg/model"
)

// analyzeMembers emits dependency-injection and implementation placeholders
// from a declaration's members. The textual type name is the resolution
// key; no type-checking is attempted.
func analyzeMembers(node *model.Node, cls ast.Class) {
	for _, param := range cls.Params {
		if param.Type == "" {
			continue
		}
		node.AddRelationship(model.RelInjects,
			model.PlaceholderID(string(model.KindService), param.Type),
			map[string]any{"parameterName": param.Name})
	}

	for _, typeText := range cls.Implements {
		node.AddRelationship(model.RelImplements,
			model.PlaceholderID(string(model.KindInterface), typeText), nil)
	}
}
