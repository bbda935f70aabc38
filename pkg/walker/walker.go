// Package walker visits every compilation unit of the source set and
// builds the first-pass graph: File nodes, import edges, and the entity
// nodes produced by metadata and member analysis. All cross-entity
// references it records are placeholders; a later resolver pass rewrites
// them against the complete node set.
package walker

import (
	"context"
	"os"
	"path/filepath"

	"github.com/archlens/ngraph/pkg/ast"
	"github.com/archlens/ngraph/pkg/interpret"
	"github.com/archlens/ngraph/pkg/logging"
	"github.com/archlens/ngraph/pkg/model"
	"github.com/archlens/ngraph/pkg/tsconfig"
)

// Walker drives the first pass over the source set.
type Walker struct {
	root    string // absolute project root
	aliases []tsconfig.Alias
	parser  *ast.Parser
}

// New creates a walker for a project root. Aliases come from the resolved
// compiler configuration and drive import-path rewriting.
func New(projectRoot string, aliases []tsconfig.Alias) (*Walker, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}
	return &Walker{
		root:    abs,
		aliases: aliases,
		parser:  ast.NewParser(),
	}, nil
}

// Walk visits the given project-relative compilation units in order and
// returns the populated, still unresolved graph. Per-file problems are
// logged and skipped; only the surrounding configuration can fail a run.
func (w *Walker) Walk(ctx context.Context, files []string) (*model.Graph, error) {
	logger := logging.New("walker")
	graph := model.NewGraph()

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := os.ReadFile(filepath.Join(w.root, filepath.FromSlash(rel)))
		if err != nil {
			logger.Warn("skipping unreadable compilation unit", "file", rel, "error", err)
			continue
		}

		source, err := w.parser.ParseFile(ctx, content, rel)
		if err != nil {
			logger.Warn("skipping unparseable compilation unit", "file", rel, "error", err)
			continue
		}

		w.visit(graph, source)
		logger.Debug("visited compilation unit",
			"file", rel,
			"imports", len(source.Imports),
			"classes", len(source.Classes),
			"interfaces", len(source.Interfaces))
	}

	logger.Info("first pass complete", "files", len(files), "nodes", graph.Len())
	return graph, nil
}

// visit merges one parsed compilation unit into the graph.
func (w *Walker) visit(graph *model.Graph, source *ast.SourceFile) {
	fileNode := graph.EnsureFile(source.Path)

	for _, imp := range source.Imports {
		target, ok := w.resolveImport(source.Path, imp.Specifier)
		props := map[string]any{"specifier": imp.Specifier}
		if ok {
			imported := graph.EnsureFile(target)
			fileNode.AddRelationship(model.RelImports, imported.ID, props)
		} else {
			// Library imports and unresolvable paths stay as terminal
			// external references; no File node is fabricated.
			fileNode.AddRelationship(model.RelImports, model.ExternalRef(imp.Specifier), props)
		}
	}

	for _, cls := range source.Classes {
		interpret.Class(graph, source.Path, cls)
	}

	for _, iface := range source.Interfaces {
		graph.EnsureEntity(model.KindInterface, iface.Name, source.Path)
	}
}
