package model

// Kind classifies a node in the extracted graph
type Kind string

const (
	KindFile      Kind = "File"
	KindModule    Kind = "Module"
	KindComponent Kind = "Component"
	KindService   Kind = "Service"
	KindPipe      Kind = "Pipe"
	KindDirective Kind = "Directive"
	KindInterface Kind = "Interface"
	KindClass     Kind = "Class"
	KindUnknown   Kind = "Unknown"
)

// RelKind classifies a directed relationship between two nodes
type RelKind string

const (
	RelImports       RelKind = "IMPORTS"
	RelDeclares      RelKind = "DECLARES"
	RelProvides      RelKind = "PROVIDES"
	RelImportsModule RelKind = "IMPORTS_MODULE"
	RelExportsModule RelKind = "EXPORTS_MODULE"
	RelBootstraps    RelKind = "BOOTSTRAPS"
	RelInjects       RelKind = "INJECTS"
	RelImplements    RelKind = "IMPLEMENTS"

	// Template-usage relationships are reserved for a later template
	// analysis pass and are never emitted by the extractor.
	RelUsesComponent RelKind = "USES_COMPONENT"
	RelUsesDirective RelKind = "USES_DIRECTIVE"
	RelUsesPipe      RelKind = "USES_PIPE"
)

// Node represents a source file or a structural entity (module, component,
// service, pipe, directive, interface, plain class).
type Node struct {
	ID            string          `json:"id"`
	Kind          Kind            `json:"type"`
	Name          string          `json:"name"`
	FilePath      string          `json:"filePath"`
	Properties    map[string]any  `json:"properties,omitempty"`
	Relationships []*Relationship `json:"relationships,omitempty"`
}

// Relationship is a typed edge owned by its source node. TargetID is either
// a concrete node id, an external-reference marker, or (before resolution)
// a placeholder id carrying a name and an optional kind hint.
type Relationship struct {
	Kind       RelKind        `json:"type"`
	TargetID   string         `json:"targetId"`
	Properties map[string]any `json:"properties,omitempty"`
}

// AddRelationship appends an outgoing edge to the node.
func (n *Node) AddRelationship(kind RelKind, targetID string, props map[string]any) *Relationship {
	rel := &Relationship{Kind: kind, TargetID: targetID, Properties: props}
	n.Relationships = append(n.Relationships, rel)
	return rel
}

// SetProperty records a role-specific property on the node.
func (n *Node) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}
