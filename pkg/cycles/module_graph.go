// Package cycles reports circular module imports. A cycle among NgModules
// is legal TypeScript but usually an architectural accident, so the report
// is advisory and never fails the run.
package cycles

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/archlens/ngraph/pkg/model"
)

// moduleGraph is a directed graph over module node ids, backed by a gonum
// graph so the SCC search can run against the standard iterator interfaces.
type moduleGraph struct {
	graph  *simple.DirectedGraph
	ids    map[string]int64
	byID   map[int64]string
	nextID int64
}

func newModuleGraph() *moduleGraph {
	return &moduleGraph{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
	}
}

func (mg *moduleGraph) addModule(nodeID string) {
	if _, exists := mg.ids[nodeID]; exists {
		return
	}
	mg.ids[nodeID] = mg.nextID
	mg.byID[mg.nextID] = nodeID
	mg.graph.AddNode(simple.Node(mg.nextID))
	mg.nextID++
}

func (mg *moduleGraph) addImport(source, target string) {
	sourceID, ok := mg.ids[source]
	if !ok {
		return
	}
	targetID, ok := mg.ids[target]
	if !ok {
		return
	}
	if sourceID == targetID {
		return
	}
	if !mg.graph.HasEdgeFromTo(sourceID, targetID) {
		mg.graph.SetEdge(mg.graph.NewEdge(mg.graph.Node(sourceID), mg.graph.Node(targetID)))
	}
}

// build collects every Module node and the IMPORTS_MODULE edges between
// them. Edges whose target is a marker or an unresolved placeholder are
// skipped; only module-to-module edges can form a reportable cycle.
func build(g *model.Graph) *moduleGraph {
	mg := newModuleGraph()
	for _, node := range g.Nodes() {
		if node.Kind == model.KindModule {
			mg.addModule(node.ID)
		}
	}
	for _, node := range g.Nodes() {
		if node.Kind != model.KindModule {
			continue
		}
		for _, rel := range node.Relationships {
			if rel.Kind != model.RelImportsModule {
				continue
			}
			mg.addImport(node.ID, rel.TargetID)
		}
	}
	return mg
}
