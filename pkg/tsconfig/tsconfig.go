// Package tsconfig resolves a project's TypeScript compiler configuration
// and produces the ordered list of in-project compilation units.
package tsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archlens/ngraph/pkg/logging"
)

const (
	appConfigName  = "tsconfig.app.json"
	rootConfigName = "tsconfig.json"
)

// CompilerOptions carries the subset of compiler settings the extractor
// consumes: the base directory and path-alias mappings for import
// resolution.
type CompilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// TSConfig is a parsed compiler configuration with its extends chain
// already applied.
type TSConfig struct {
	Extends         string          `json:"extends"`
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Files           []string        `json:"files"`
	Include         []string        `json:"include"`
	Exclude         []string        `json:"exclude"`

	// Dir is the directory containing the configuration file; relative
	// paths inside the file resolve against it.
	Dir string `json:"-"`
}

// Locate finds the effective configuration file. An explicit path wins;
// otherwise the application-level tsconfig.app.json is preferred, falling
// back to the root tsconfig.json with a warning.
func Locate(projectRoot, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("tsconfig %s: %w", explicit, err)
		}
		return explicit, nil
	}

	appConfig := filepath.Join(projectRoot, appConfigName)
	if _, err := os.Stat(appConfig); err == nil {
		return appConfig, nil
	}

	rootConfig := filepath.Join(projectRoot, rootConfigName)
	if _, err := os.Stat(rootConfig); err == nil {
		logging.Warn("tsconfig.app.json not found, falling back to tsconfig.json",
			"project", projectRoot)
		return rootConfig, nil
	}

	return "", fmt.Errorf("no tsconfig found in %s (looked for %s, %s)",
		projectRoot, appConfigName, rootConfigName)
}

// Load parses the configuration file at path, following extends chains.
// tsconfig files are JSONC: comments and trailing commas are tolerated.
func Load(path string) (*TSConfig, error) {
	return load(path, make(map[string]bool))
}

func load(path string, visiting map[string]bool) (*TSConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if visiting[abs] {
		return nil, fmt.Errorf("tsconfig extends cycle at %s", abs)
	}
	visiting[abs] = true

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading tsconfig: %w", err)
	}

	var cfg TSConfig
	if err := json.Unmarshal(stripJSONC(raw), &cfg); err != nil {
		return nil, fmt.Errorf("parsing tsconfig %s: %w", abs, err)
	}
	cfg.Dir = filepath.Dir(abs)

	if cfg.Extends == "" {
		return &cfg, nil
	}

	basePath := cfg.Extends
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(cfg.Dir, basePath)
	}
	if filepath.Ext(basePath) == "" {
		basePath += ".json"
	}
	base, err := load(basePath, visiting)
	if err != nil {
		return nil, fmt.Errorf("resolving extends %q: %w", cfg.Extends, err)
	}

	return merge(base, &cfg), nil
}

// merge applies child settings over the base config. Scalar options from
// the child win; paths maps merge with child entries taking precedence.
func merge(base, child *TSConfig) *TSConfig {
	out := *child

	if out.CompilerOptions.BaseURL == "" {
		out.CompilerOptions.BaseURL = base.CompilerOptions.BaseURL
		// An inherited baseUrl is relative to the file that declared it.
		if out.CompilerOptions.BaseURL != "" && out.Dir != base.Dir {
			rel, err := filepath.Rel(out.Dir, filepath.Join(base.Dir, out.CompilerOptions.BaseURL))
			if err == nil {
				out.CompilerOptions.BaseURL = rel
			}
		}
	}

	if len(base.CompilerOptions.Paths) > 0 {
		paths := make(map[string][]string, len(base.CompilerOptions.Paths)+len(child.CompilerOptions.Paths))
		for k, v := range base.CompilerOptions.Paths {
			paths[k] = v
		}
		for k, v := range child.CompilerOptions.Paths {
			paths[k] = v
		}
		out.CompilerOptions.Paths = paths
	}

	if out.Files == nil {
		out.Files = base.Files
	}
	if out.Include == nil {
		out.Include = base.Include
	}
	if out.Exclude == nil {
		out.Exclude = base.Exclude
	}

	return &out
}
