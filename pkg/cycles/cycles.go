package cycles

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/archlens/ngraph/pkg/model"
)

// ModuleCycle is one group of modules that import each other, directly or
// through intermediaries.
type ModuleCycle struct {
	Modules []string
}

// FindModuleCycles returns every circular import group among the graph's
// modules. Module names within a cycle are sorted so repeated runs report
// cycles identically.
func FindModuleCycles(g *model.Graph) []ModuleCycle {
	mg := build(g)
	sccs := newTarjanSCC(mg.graph).findSCCs()

	cycles := make([]ModuleCycle, 0, len(sccs))
	for _, scc := range sccs {
		names := make([]string, 0, len(scc))
		for _, id := range scc {
			nodeID := mg.byID[id]
			if node, ok := g.Get(nodeID); ok {
				names = append(names, node.Name)
			}
		}
		sort.Strings(names)
		cycles = append(cycles, ModuleCycle{Modules: names})
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Modules[0] < cycles[j].Modules[0]
	})
	return cycles
}

// PrintReport prints the cycle report with colors.
func PrintReport(w io.Writer, cycles []ModuleCycle) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(w, "Module Import Cycles")
	bold.Fprintln(w, "====================")

	if len(cycles) == 0 {
		green.Fprintln(w, "✓ No circular module imports detected")
		return
	}

	red.Fprintf(w, "Found %d cycle(s):\n", len(cycles))
	for i, cycle := range cycles {
		fmt.Fprintf(w, "  Cycle %d:\n", i+1)
		for _, name := range cycle.Modules {
			yellow.Fprintf(w, "    %s\n", name)
		}
	}
}
