package ast

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/archlens/ngraph/pkg/model"
)

// parseValue interprets a metadata literal into the tagged variant.
// String, number and boolean literals keep their value; arrays keep their
// element source texts; identifiers and member accesses keep their source
// text. Anything else becomes an opaque placeholder tagged with its
// syntactic kind — complex expressions are never evaluated, and
// interpretation never fails.
func parseValue(node *sitter.Node, content []byte) model.Value {
	switch node.Type() {
	case "string":
		return model.StringValue(stringContent(node, content))
	case "template_string":
		// A substitution-free template is just a string literal.
		if s, ok := plainTemplate(node, content); ok {
			return model.StringValue(s)
		}
		return model.OpaqueValue(node.Type())
	case "number":
		n, err := strconv.ParseFloat(strings.ReplaceAll(text(node, content), "_", ""), 64)
		if err != nil {
			return model.OpaqueValue(node.Type())
		}
		return model.NumberValue(n)
	case "true":
		return model.BoolValue(true)
	case "false":
		return model.BoolValue(false)
	case "array":
		return model.ListValue(arrayElements(node, content))
	case "identifier", "member_expression":
		return model.IdentValue(text(node, content))
	default:
		return model.OpaqueValue(node.Type())
	}
}

// arrayElements returns the source texts of an array literal's elements,
// keeping non-empty texts only.
func arrayElements(node *sitter.Node, content []byte) []string {
	var elems []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		t := text(child, content)
		if child.Type() == "string" {
			t = stringContent(child, content)
		}
		if t != "" {
			elems = append(elems, t)
		}
	}
	return elems
}

// plainTemplate extracts the text of a template string that contains no
// substitutions.
func plainTemplate(node *sitter.Node, content []byte) (string, bool) {
	var sb strings.Builder
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "`":
		case "string_fragment":
			sb.WriteString(text(child, content))
		default:
			return "", false
		}
	}
	return sb.String(), true
}
