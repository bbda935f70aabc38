package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/archlens/ngraph/pkg/model"
	"github.com/archlens/ngraph/pkg/resolver"
)

// PrintSummary prints a formatted analysis report with colors. It is meant
// for a terminal alongside the JSON payload, so callers pass stderr when
// the graph itself goes to stdout.
func PrintSummary(w io.Writer, project string, fileCount int, graph *model.Graph, stats resolver.Stats) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(w, "Angular Graph Analyzer - Summary")
	bold.Fprintln(w, "================================")
	fmt.Fprintf(w, "Project: %s\n", project)
	fmt.Fprintf(w, "Scanned: %d source files\n", fileCount)
	fmt.Fprintln(w)

	nodeCounts := map[model.Kind]int{}
	relCounts := map[model.RelKind]int{}
	relTotal := 0
	for _, node := range graph.Nodes() {
		nodeCounts[node.Kind]++
		for _, rel := range node.Relationships {
			relCounts[rel.Kind]++
			relTotal++
		}
	}

	cyan.Fprintf(w, "Nodes: %d\n", graph.Len())
	for _, kind := range sortedKeys(nodeCounts) {
		fmt.Fprintf(w, "  %-10s %d\n", kind, nodeCounts[kind])
	}
	cyan.Fprintf(w, "Relationships: %d\n", relTotal)
	for _, kind := range sortedKeys(relCounts) {
		fmt.Fprintf(w, "  %-15s %d\n", kind, relCounts[kind])
	}
	fmt.Fprintln(w)

	green.Fprintf(w, "Resolved: %d references\n", stats.Resolved)
	if stats.Ambiguous > 0 {
		yellow.Fprintf(w, "Ambiguous: %d reference(s)\n", stats.Ambiguous)
	}
	if stats.Unresolved > 0 {
		red.Fprintf(w, "Unresolved: %d reference(s)\n", stats.Unresolved)
	}
	fmt.Fprintf(w, "External: %d references\n", stats.External)

	if stats.Ambiguous == 0 && stats.Unresolved == 0 {
		green.Fprintln(w, "✓ All internal references resolved!")
	}
}

func sortedKeys[K ~string](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
