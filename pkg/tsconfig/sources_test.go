package tsconfig

import (
	"reflect"
	"testing"
)

func TestSourceFilesIncludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app/app.component.ts", "")
	writeFile(t, root, "src/app/app.module.ts", "")
	writeFile(t, root, "src/app/app.component.spec.ts", "")
	writeFile(t, root, "src/typings.d.ts", "")
	writeFile(t, root, "node_modules/lib/index.ts", "")
	writeFile(t, root, "dist/app.component.ts", "")
	cfgPath := writeFile(t, root, "tsconfig.json", `{
  "include": ["src/**/*.ts"],
  "exclude": ["src/**/*.spec.ts"]
}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.SourceFiles(root)
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}

	want := []string{"src/app/app.component.ts", "src/app/app.module.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestSourceFilesBareDirectoryInclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "")
	writeFile(t, root, "src/app/deep/nested.component.ts", "")
	writeFile(t, root, "tools/script.ts", "")
	cfgPath := writeFile(t, root, "tsconfig.json", `{"include": ["src"]}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.SourceFiles(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"src/app/deep/nested.component.ts", "src/main.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestSourceFilesExplicitList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "")
	writeFile(t, root, "src/other.ts", "")
	cfgPath := writeFile(t, root, "tsconfig.json", `{"files": ["src/main.ts"]}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.SourceFiles(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"src/main.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestSourceFilesNoSelectorsTakesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "")
	writeFile(t, root, "b.ts", "")
	writeFile(t, root, "b.d.ts", "")
	cfgPath := writeFile(t, root, "tsconfig.json", `{}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.SourceFiles(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"b.ts", "src/a.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestSourceFilesPatternsRelativeToConfigDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app/feature/list.component.ts", "")
	writeFile(t, root, "src/app/feature/list.component.spec.ts", "")
	writeFile(t, root, "tools/build.ts", "")
	cfgPath := writeFile(t, root, "config/tsconfig.tools.json", `{
  "include": ["../src/**/*.ts"],
  "exclude": ["../src/**/*.spec.ts"]
}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.SourceFiles(root)
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}

	want := []string{"src/app/feature/list.component.ts"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestAliasesLongestPrefixFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app/core/core.module.ts", "")
	cfgPath := writeFile(t, root, "tsconfig.json", `{
  "compilerOptions": {
    "baseUrl": "./src",
    "paths": {
      "@app/*": ["app/*"],
      "@app/core/*": ["app/core/*"],
      "environment": ["environments/environment.ts"]
    }
  }
}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	aliases, err := cfg.Aliases(root)
	if err != nil {
		t.Fatalf("Aliases: %v", err)
	}

	if len(aliases) != 3 {
		t.Fatalf("alias count = %d, want 3", len(aliases))
	}
	if aliases[0].Prefix != "@app/core/" {
		t.Errorf("first alias = %q, want longest prefix first", aliases[0].Prefix)
	}
	for _, a := range aliases {
		if a.Original == "environment" {
			if !a.Exact {
				t.Error("wildcard-free pattern must be exact")
			}
			if len(a.Targets) != 1 || a.Targets[0] != "src/environments/environment.ts" {
				t.Errorf("exact alias targets = %v", a.Targets)
			}
		}
		if a.Original == "@app/*" {
			if a.Exact {
				t.Error("wildcard pattern must not be exact")
			}
			if len(a.Targets) != 1 || a.Targets[0] != "src/app" {
				t.Errorf("alias targets = %v", a.Targets)
			}
		}
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/app.component.ts", true},
		{"src/typings.d.ts", false},
		{"src/styles.css", false},
		{"main.ts", true},
	}
	for _, tt := range tests {
		if got := IsSourceFile(tt.path); got != tt.want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
