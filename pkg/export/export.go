// Package export flattens a resolved graph into the interchange document
// consumed by the downstream graph-store loader. Serialization performs no
// further mutation or validation; remaining ambiguity and unresolved
// markers pass through verbatim as plain target-id strings.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/archlens/ngraph/pkg/model"
)

// NodeRecord is one emitted node. Every record carries all three fields.
type NodeRecord struct {
	ID         string         `json:"_id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// RelationshipRecord is one emitted relationship.
type RelationshipRecord struct {
	ID         string         `json:"_id"`
	SourceID   string         `json:"_sourceId"`
	TargetID   string         `json:"_targetId"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Document is the full interchange payload.
type Document struct {
	Nodes         []NodeRecord         `json:"nodes"`
	Relationships []RelationshipRecord `json:"relationships"`
}

// baseLabel is the label shared by every emitted node; the loader indexes
// on it.
const baseLabel = "AngularEntity"

// Build flattens the graph into node and relationship records. Nodes keep
// their insertion order and relationship ids number off deterministically,
// so an unchanged node set serializes identically.
func Build(graph *model.Graph) *Document {
	doc := &Document{
		Nodes:         make([]NodeRecord, 0, graph.Len()),
		Relationships: make([]RelationshipRecord, 0),
	}

	relSeq := 0
	for _, node := range graph.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeRecord{
			ID:         node.ID,
			Labels:     []string{baseLabel, kindLabel(node.Kind)},
			Properties: nodeProperties(node),
		})

		for _, rel := range node.Relationships {
			props := rel.Properties
			if props == nil {
				props = map[string]any{}
			}
			doc.Relationships = append(doc.Relationships, RelationshipRecord{
				ID:         fmt.Sprintf("rel:%d", relSeq),
				SourceID:   node.ID,
				TargetID:   rel.TargetID,
				Type:       string(rel.Kind),
				Properties: props,
			})
			relSeq++
		}
	}

	return doc
}

// Write renders the document as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}

// kindLabel maps a node kind to its store label. Unclassified entities
// keep a distinct label so they stay queryable.
func kindLabel(kind model.Kind) string {
	if kind == model.KindUnknown {
		return "UnknownEntity"
	}
	return string(kind)
}

// nodeProperties merges the identity fields with the role-specific ones.
func nodeProperties(node *model.Node) map[string]any {
	props := map[string]any{
		"id":       node.ID,
		"name":     node.Name,
		"filePath": node.FilePath,
		"type":     string(node.Kind),
	}
	for k, v := range node.Properties {
		props[k] = v
	}
	return props
}
