package walker

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/archlens/ngraph/pkg/tsconfig"
)

// resolveImport maps an import specifier to a project-relative source file.
// Resolution order: relative specifiers against the importing file's
// directory, then configured path aliases, then the project root. Each
// candidate is probed as a direct file, an index file, and the literal
// path. A miss means the import is external.
func (w *Walker) resolveImport(importer, specifier string) (string, bool) {
	if specifier == "" {
		return "", false
	}

	if strings.HasPrefix(specifier, ".") {
		candidate := path.Join(path.Dir(importer), specifier)
		return w.probe(candidate)
	}

	for _, alias := range w.aliases {
		if alias.Exact {
			if specifier != alias.Prefix {
				continue
			}
			for _, target := range alias.Targets {
				if resolved, ok := w.probe(target); ok {
					return resolved, true
				}
			}
			continue
		}
		if !strings.HasPrefix(specifier, alias.Prefix) {
			continue
		}
		rest := specifier[len(alias.Prefix):]
		for _, target := range alias.Targets {
			if resolved, ok := w.probe(path.Join(target, rest)); ok {
				return resolved, true
			}
		}
	}

	return w.probe(specifier)
}

// probe tries the candidate as <p>.ts, <p>/index.ts, then <p> itself. A
// hit must lie inside the project and look like a source file.
func (w *Walker) probe(candidate string) (string, bool) {
	candidate = path.Clean(candidate)
	if candidate == ".." || strings.HasPrefix(candidate, "../") || path.IsAbs(candidate) {
		return "", false
	}

	for _, rel := range []string{candidate + ".ts", candidate + "/index.ts", candidate} {
		if !tsconfig.IsSourceFile(rel) {
			continue
		}
		info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel)))
		if err != nil || info.IsDir() {
			continue
		}
		return rel, true
	}
	return "", false
}
