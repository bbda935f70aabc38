// Package interpret classifies class-like declarations from their attached
// decorators and turns the structured metadata into node properties and
// placeholder relationships. Targets that cannot be located yet are
// recorded as placeholders for the resolver; nothing here fails the run.
package interpret

import (
	"strings"

	"github.com/archlens/ngraph/pkg/ast"
	"github.com/archlens/ngraph/pkg/model"
)

// decoratorKinds maps recognized annotation names to entity kinds.
var decoratorKinds = map[string]model.Kind{
	"NgModule":   model.KindModule,
	"Component":  model.KindComponent,
	"Injectable": model.KindService,
	"Pipe":       model.KindPipe,
	"Directive":  model.KindDirective,
}

// Class merges one class declaration into the arena: the first recognized
// decorator determines the kind (plain classes stay Class), role-specific
// metadata becomes properties and placeholder relationships, and
// constructor parameters and heritage clauses become injection and
// implementation edges.
func Class(g *model.Graph, filePath string, cls ast.Class) *model.Node {
	kind, obj := classify(cls.Decorators)
	node := g.Upsert(kind, cls.Name, filePath, nil)

	switch kind {
	case model.KindModule:
		applyModule(g, node, obj)
	case model.KindComponent:
		copyProperty(node, obj, "selector", "selector")
		copyProperty(node, obj, "templateUrl", "templateUrl")
		copyProperty(node, obj, "styleUrls", "styleUrls")
	case model.KindService:
		copyProperty(node, obj, "providedIn", "providedIn")
	case model.KindPipe:
		copyProperty(node, obj, "name", "pipeName")
	case model.KindDirective:
		copyProperty(node, obj, "selector", "selector")
	}

	analyzeMembers(node, cls)
	return node
}

// classify returns the entity kind implied by the first recognized
// decorator, in declaration order. A bare marker still promotes the kind
// but contributes no metadata.
func classify(decorators []ast.Decorator) (model.Kind, *ast.ObjectLiteral) {
	for _, dec := range decorators {
		if kind, ok := decoratorKinds[dec.Name]; ok {
			return kind, dec.Object
		}
	}
	return model.KindClass, nil
}

// applyModule handles NgModule metadata. Declared entities get a same-file
// guess with a kind hint inferred from the name suffix; imported modules,
// providers, exports and bootstrap components become placeholders resolved
// in the second pass.
func applyModule(g *model.Graph, node *model.Node, obj *ast.ObjectLiteral) {
	if obj == nil {
		return
	}

	if v, ok := obj.Get("declarations"); ok {
		for _, name := range v.Strings() {
			hint := declarationHint(name)
			if hint == model.KindUnknown {
				// No suffix to guess from: leave a name-only placeholder.
				node.AddRelationship(model.RelDeclares,
					model.KindHintNone+":"+name+":"+node.FilePath, nil)
				continue
			}
			// Same-file guess: assume the declaration lives next to its
			// module. A speculative node keeps the edge target concrete;
			// the guess is not verified.
			target := g.EnsureEntity(hint, name, node.FilePath)
			node.AddRelationship(model.RelDeclares, target.ID, nil)
		}
	}

	if v, ok := obj.Get("imports"); ok {
		for _, name := range v.Strings() {
			node.AddRelationship(model.RelImportsModule,
				model.PlaceholderID(string(model.KindModule), name), nil)
		}
	}

	if v, ok := obj.Get("providers"); ok {
		// Provider-object forms are kept as their source text and resolve
		// (or fail to) by that name; they are not decomposed.
		for _, name := range v.Strings() {
			node.AddRelationship(model.RelProvides,
				model.PlaceholderID(string(model.KindService), name), nil)
		}
	}

	if v, ok := obj.Get("exports"); ok {
		for _, name := range v.Strings() {
			node.AddRelationship(model.RelExportsModule,
				model.PlaceholderID(model.KindHintExport, name), nil)
		}
	}

	if v, ok := obj.Get("bootstrap"); ok {
		for _, name := range v.Strings() {
			node.AddRelationship(model.RelBootstraps,
				model.PlaceholderID(string(model.KindComponent), name), nil)
		}
	}

	if v, ok := obj.Get("id"); ok {
		node.SetProperty("id", v.Interface())
	}
}

// declarationHint infers a declared entity's kind from its name suffix.
func declarationHint(name string) model.Kind {
	switch {
	case strings.HasSuffix(name, "Component"):
		return model.KindComponent
	case strings.HasSuffix(name, "Directive"):
		return model.KindDirective
	case strings.HasSuffix(name, "Pipe"):
		return model.KindPipe
	default:
		return model.KindUnknown
	}
}

// copyProperty copies one decorator property onto the node verbatim when
// present. Empty lists are not recorded.
func copyProperty(node *model.Node, obj *ast.ObjectLiteral, key, as string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	if v.Kind == model.ValueList && len(v.List) == 0 {
		return
	}
	node.SetProperty(as, v.Interface())
}
