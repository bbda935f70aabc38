package model

// Graph is the in-memory node arena for one extraction run. Nodes are
// addressed by stable string ids, never by pointers between entities,
// because entities are frequently referenced before they are declared.
// A Graph must not be shared between runs.
type Graph struct {
	nodes []*Node
	index map[string]*Node
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]*Node, 0),
		index: make(map[string]*Node),
	}
}

// EnsureFile returns the File node for a project-relative path, creating it
// on first use. Repeated imports of the same file reuse the existing node.
func (g *Graph) EnsureFile(relPath string) *Node {
	id := FileID(relPath)
	if node, ok := g.index[id]; ok {
		return node
	}
	node := &Node{
		ID:       id,
		Kind:     KindFile,
		Name:     baseName(relPath),
		FilePath: relPath,
	}
	g.insert(node)
	return node
}

// EnsureEntity returns the entity node with the given identity, creating a
// provisional node when none exists. Used for speculative targets such as a
// module's same-file declaration guesses.
func (g *Graph) EnsureEntity(kind Kind, name, filePath string) *Node {
	id := EntityID(kind, name, filePath)
	if node, ok := g.index[id]; ok {
		return node
	}
	node := &Node{ID: id, Kind: kind, Name: name, FilePath: filePath}
	g.insert(node)
	return node
}

// Upsert merges an authoritative classification into the arena. If a node
// with the same id already exists (created speculatively by another
// entity's placeholder) it is reused: properties merge in and
// relationships append later, never replace. Otherwise a new node is
// created.
func (g *Graph) Upsert(kind Kind, name, filePath string, props map[string]any) *Node {
	node := g.EnsureEntity(kind, name, filePath)
	node.Kind = kind
	node.Name = name
	node.FilePath = filePath
	for k, v := range props {
		node.SetProperty(k, v)
	}
	return node
}

// Get returns the node with the given id.
func (g *Graph) Get(id string) (*Node, bool) {
	node, ok := g.index[id]
	return node, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// FindByName returns every node whose name matches, optionally restricted
// to one kind. The result depends only on the node set, not on insertion
// order, which keeps placeholder resolution deterministic.
func (g *Graph) FindByName(name string, kind Kind) []*Node {
	var matches []*Node
	for _, node := range g.nodes {
		if node.Name != name {
			continue
		}
		if kind != "" && node.Kind != kind {
			continue
		}
		matches = append(matches, node)
	}
	return matches
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) insert(node *Node) {
	g.nodes = append(g.nodes, node)
	g.index[node.ID] = node
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
