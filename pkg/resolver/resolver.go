// Package resolver implements the second pass: once the whole program has
// been visited, every placeholder relationship target is rewritten into a
// concrete node id, an ambiguity marker, or an unresolved marker. The
// rewrite is a pure function of the final node set and must not depend on
// the order relationships are visited.
package resolver

import (
	"github.com/archlens/ngraph/pkg/logging"
	"github.com/archlens/ngraph/pkg/model"
)

// Stats counts the outcomes of one resolution pass.
type Stats struct {
	Resolved   int
	Ambiguous  int
	Unresolved int
	External   int
	Concrete   int // targets that needed no rewriting
}

// Resolve rewrites every placeholder target in the graph, exactly once.
// External-reference markers are final and left untouched. The graph must
// be fully constructed: no node or relationship may be added afterwards.
func Resolve(graph *model.Graph) Stats {
	logger := logging.New("resolver")
	var stats Stats

	for _, node := range graph.Nodes() {
		for _, rel := range node.Relationships {
			switch {
			case model.IsExternalRef(rel.TargetID):
				stats.External++
			case model.IsPlaceholder(rel.TargetID):
				rel.TargetID = resolveTarget(graph, rel.TargetID, &stats)
			default:
				stats.Concrete++
			}
		}
	}

	logger.Info("resolution complete",
		"resolved", stats.Resolved,
		"ambiguous", stats.Ambiguous,
		"unresolved", stats.Unresolved,
		"external", stats.External)
	return stats
}

// resolveTarget maps one placeholder to its outcome by candidate count:
// exactly one name match rewrites to that node's id, several matches to an
// ambiguity marker, none to an unresolved marker.
func resolveTarget(graph *model.Graph, targetID string, stats *Stats) string {
	name, hint := placeholderQuery(targetID)
	if name == "" {
		stats.Unresolved++
		return model.UnresolvedRef(targetID)
	}

	candidates := graph.FindByName(name, hint)
	switch len(candidates) {
	case 1:
		stats.Resolved++
		return candidates[0].ID
	case 0:
		stats.Unresolved++
		return model.UnresolvedRef(name)
	default:
		stats.Ambiguous++
		return model.AmbiguousRef(name)
	}
}

// placeholderQuery extracts the target name and optional kind hint from a
// placeholder's structured form. Unknown and unknown-export markers carry
// no hint and search across all kinds.
func placeholderQuery(targetID string) (string, model.Kind) {
	kind, name, _, ok := model.SplitID(targetID)
	if !ok {
		return "", ""
	}
	if kind == model.KindHintNone || kind == model.KindHintExport {
		return name, ""
	}
	return name, model.Kind(kind)
}
