package tsconfig

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// SourceFiles returns the compilation units selected by the configuration,
// as sorted project-root-relative paths with forward slashes. Declaration
// files (.d.ts) and anything outside the project root are excluded, as are
// node_modules and hidden directories.
func (c *TSConfig) SourceFiles(projectRoot string) ([]string, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	include, err := compileGlobs(c.Include)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := compileGlobs(c.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	selected := make(map[string]bool)

	// Explicit file list, relative to the config directory.
	for _, f := range c.Files {
		abs := f
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(c.Dir, f)
		}
		rel, ok := projectRelSource(absRoot, abs)
		if !ok {
			continue
		}
		selected[rel] = true
	}

	// Include patterns (or everything, if the config names no files at
	// all) are matched against a walk of the project root. Patterns
	// resolve relative to the config file's directory, not the project
	// root; the two only coincide for a root-level tsconfig.
	if len(c.Include) > 0 || (len(c.Files) == 0 && len(c.Include) == 0) {
		err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != absRoot && (name == "node_modules" || name == "dist" || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, ok := projectRelSource(absRoot, path)
			if !ok {
				return nil
			}
			cfgRel, err := filepath.Rel(c.Dir, path)
			if err != nil {
				return nil
			}
			cfgRel = filepath.ToSlash(cfgRel)
			if len(c.Include) > 0 && !matchAny(include, cfgRel) && !underIncludedDir(c.Include, cfgRel) {
				return nil
			}
			if matchAny(exclude, cfgRel) {
				return nil
			}
			selected[rel] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", absRoot, err)
		}
	}

	files := make([]string, 0, len(selected))
	for f := range selected {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// Alias is one path-alias mapping from compilerOptions.paths: a specifier
// prefix and the filesystem roots (project-root-relative) it rewrites to.
type Alias struct {
	Prefix   string   // e.g. "@app/" (trailing wildcard stripped)
	Exact    bool     // pattern had no wildcard
	Targets  []string // candidate roots, e.g. "src/app/"
	Original string   // pattern as written, for diagnostics
}

// Aliases returns the path-alias mappings, longest prefix first so that the
// most specific alias wins during import resolution.
func (c *TSConfig) Aliases(projectRoot string) ([]Alias, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	base := c.Dir
	if c.CompilerOptions.BaseURL != "" {
		base = filepath.Join(c.Dir, c.CompilerOptions.BaseURL)
	}

	aliases := make([]Alias, 0, len(c.CompilerOptions.Paths))
	for pattern, targets := range c.CompilerOptions.Paths {
		alias := Alias{Original: pattern}
		if strings.HasSuffix(pattern, "*") {
			alias.Prefix = strings.TrimSuffix(pattern, "*")
		} else {
			alias.Prefix = pattern
			alias.Exact = true
		}
		for _, target := range targets {
			t := strings.TrimSuffix(target, "*")
			abs := filepath.Join(base, t)
			rel, err := filepath.Rel(absRoot, abs)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			alias.Targets = append(alias.Targets, filepath.ToSlash(rel))
		}
		if len(alias.Targets) > 0 {
			aliases = append(aliases, alias)
		}
	}

	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].Prefix) != len(aliases[j].Prefix) {
			return len(aliases[i].Prefix) > len(aliases[j].Prefix)
		}
		return aliases[i].Prefix < aliases[j].Prefix
	})
	return aliases, nil
}

// IsSourceFile reports whether a path names a compilation unit: a .ts file
// that is not a declaration file.
func IsSourceFile(path string) bool {
	return strings.HasSuffix(path, ".ts") && !strings.HasSuffix(path, ".d.ts")
}

func projectRelSource(absRoot, path string) (string, bool) {
	if !IsSourceFile(path) {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// underIncludedDir handles include entries that name a bare directory,
// which tsconfig treats as recursive.
func underIncludedDir(patterns []string, rel string) bool {
	for _, p := range patterns {
		if strings.ContainsAny(p, "*?{") {
			continue
		}
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if p != "" && strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
