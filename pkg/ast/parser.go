package ast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser turns TypeScript source into SourceFile summaries. It is not safe
// for concurrent use; the extraction pipeline is single-threaded.
type Parser struct{}

// NewParser creates a TypeScript parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses one compilation unit. Tree-sitter is error tolerant, so
// syntactically broken files yield a partial (possibly empty) result
// rather than an error.
func (p *Parser) ParseFile(ctx context.Context, content []byte, path string) (*SourceFile, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	file := &SourceFile{Path: path}
	root := tree.RootNode()

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_statement":
			if spec := importSpecifier(child, content); spec != "" {
				file.Imports = append(file.Imports, Import{Specifier: spec})
			}
		case "export_statement":
			p.walkExport(child, content, file)
		case "class_declaration", "abstract_class_declaration":
			if cls := p.parseClass(child, content, nil); cls != nil {
				file.Classes = append(file.Classes, *cls)
			}
		case "interface_declaration":
			if name := fieldText(child, "name", content); name != "" {
				file.Interfaces = append(file.Interfaces, Interface{Name: name})
			}
		}
	}

	return file, nil
}

// walkExport unwraps an export statement. Decorators of an exported class
// attach to the export statement itself, before the class node.
func (p *Parser) walkExport(node *sitter.Node, content []byte, file *SourceFile) {
	var decorators []Decorator

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "decorator":
			if dec, ok := parseDecorator(child, content); ok {
				decorators = append(decorators, dec)
			}
		case "class_declaration", "abstract_class_declaration":
			if cls := p.parseClass(child, content, decorators); cls != nil {
				file.Classes = append(file.Classes, *cls)
			}
		case "interface_declaration":
			if name := fieldText(child, "name", content); name != "" {
				file.Interfaces = append(file.Interfaces, Interface{Name: name})
			}
		case "string":
			// Re-export form: export { Foo } from './bar'
			if spec := stringContent(child, content); spec != "" {
				file.Imports = append(file.Imports, Import{Specifier: spec})
			}
		}
	}
}

// parseClass extracts one class declaration, folding in decorators already
// collected from an enclosing export statement.
func (p *Parser) parseClass(node *sitter.Node, content []byte, decorators []Decorator) *Class {
	name := fieldText(node, "name", content)
	if name == "" {
		return nil
	}
	cls := &Class{Name: name, Decorators: decorators}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "decorator":
			if dec, ok := parseDecorator(child, content); ok {
				cls.Decorators = append(cls.Decorators, dec)
			}
		case "class_heritage":
			cls.Implements = append(cls.Implements, implementsTypes(child, content)...)
		case "class_body":
			cls.Params = constructorParams(child, content)
		}
	}

	return cls
}

// parseDecorator reads @Name or @Name(arg, ...). Only the first
// object-literal argument carries structured metadata.
func parseDecorator(node *sitter.Node, content []byte) (Decorator, bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier", "member_expression":
			return Decorator{Name: text(child, content)}, true
		case "call_expression":
			dec := Decorator{}
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case "identifier", "member_expression":
					if dec.Name == "" {
						dec.Name = text(gc, content)
					}
				case "arguments":
					dec.Object = firstObjectArg(gc, content)
				}
			}
			return dec, dec.Name != ""
		}
	}
	return Decorator{}, false
}

// firstObjectArg parses the first object-literal argument of a decorator
// call, preserving property order.
func firstObjectArg(argsNode *sitter.Node, content []byte) *ObjectLiteral {
	for i := 0; i < int(argsNode.ChildCount()); i++ {
		child := argsNode.Child(i)
		if child.Type() != "object" {
			continue
		}
		obj := &ObjectLiteral{}
		for j := 0; j < int(child.ChildCount()); j++ {
			pair := child.Child(j)
			if pair.Type() != "pair" {
				continue
			}
			key := pair.ChildByFieldName("key")
			value := pair.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			keyText := text(key, content)
			if key.Type() == "string" {
				keyText = stringContent(key, content)
			}
			obj.Props = append(obj.Props, Property{
				Key:   keyText,
				Value: parseValue(value, content),
			})
		}
		return obj
	}
	return nil
}

// implementsTypes collects the implemented type texts from a heritage
// clause. Extends clauses are ignored.
func implementsTypes(heritage *sitter.Node, content []byte) []string {
	var types []string
	for i := 0; i < int(heritage.ChildCount()); i++ {
		clause := heritage.Child(i)
		if clause.Type() != "implements_clause" {
			continue
		}
		for j := 0; j < int(clause.ChildCount()); j++ {
			t := clause.Child(j)
			if t.Type() == "type_identifier" || t.Type() == "generic_type" {
				types = append(types, text(t, content))
			}
		}
	}
	return types
}

// constructorParams finds the constructor inside a class body and returns
// its parameters in order. Type is empty for parameters without an
// explicit annotation; parameter-property modifiers are accepted.
func constructorParams(body *sitter.Node, content []byte) []Param {
	for i := 0; i < int(body.ChildCount()); i++ {
		method := body.Child(i)
		if method.Type() != "method_definition" {
			continue
		}
		if fieldText(method, "name", content) != "constructor" {
			continue
		}
		params := method.ChildByFieldName("parameters")
		if params == nil {
			return nil
		}
		var out []Param
		for j := 0; j < int(params.ChildCount()); j++ {
			p := params.Child(j)
			if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
				continue
			}
			name := fieldText(p, "pattern", content)
			if name == "" {
				continue
			}
			out = append(out, Param{
				Name: name,
				Type: annotationType(p.ChildByFieldName("type"), content),
			})
		}
		return out
	}
	return nil
}

// annotationType returns the type text of a type_annotation node, which
// syntactically is ": <type>".
func annotationType(ann *sitter.Node, content []byte) string {
	if ann == nil {
		return ""
	}
	for i := 0; i < int(ann.ChildCount()); i++ {
		child := ann.Child(i)
		if child.Type() != ":" {
			return text(child, content)
		}
	}
	return ""
}

// importSpecifier returns the literal module specifier of an import
// statement, or "" for non-literal forms.
func importSpecifier(node *sitter.Node, content []byte) string {
	source := node.ChildByFieldName("source")
	if source == nil || source.Type() != "string" {
		return ""
	}
	return stringContent(source, content)
}

// stringContent returns the text of a string literal without its quotes.
func stringContent(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "string_fragment" {
			return text(child, content)
		}
	}
	return ""
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return text(child, content)
}

func text(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}
