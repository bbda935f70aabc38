package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archlens/ngraph/pkg/model"
	"github.com/archlens/ngraph/pkg/tsconfig"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func walkProject(t *testing.T, root string, aliases []tsconfig.Alias, files []string) *model.Graph {
	t.Helper()
	w, err := New(root, aliases)
	if err != nil {
		t.Fatal(err)
	}
	graph, err := w.Walk(context.Background(), files)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return graph
}

func findRel(t *testing.T, g *model.Graph, sourceID string, kind model.RelKind) []*model.Relationship {
	t.Helper()
	node, ok := g.Get(sourceID)
	if !ok {
		t.Fatalf("node %s not in graph", sourceID)
	}
	var rels []*model.Relationship
	for _, rel := range node.Relationships {
		if rel.Kind == kind {
			rels = append(rels, rel)
		}
	}
	return rels
}

func TestRelativeImportResolvesToFileNode(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app/app.component.ts", `
import { DataService } from './data.service';
export class AppComponent {}
`)
	writeSource(t, root, "src/app/data.service.ts", `export class DataService {}`)

	g := walkProject(t, root, nil, []string{"src/app/app.component.ts", "src/app/data.service.ts"})

	rels := findRel(t, g, model.FileID("src/app/app.component.ts"), model.RelImports)
	if len(rels) != 1 {
		t.Fatalf("import edges = %d, want 1", len(rels))
	}
	if got, want := rels[0].TargetID, model.FileID("src/app/data.service.ts"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
	if got := rels[0].Properties["specifier"]; got != "./data.service" {
		t.Errorf("specifier = %v", got)
	}
}

func TestLibraryImportStaysExternal(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/main.ts", `
import { Component } from '@angular/core';
export class Main {}
`)

	g := walkProject(t, root, nil, []string{"src/main.ts"})

	rels := findRel(t, g, model.FileID("src/main.ts"), model.RelImports)
	if len(rels) != 1 {
		t.Fatalf("import edges = %d, want 1", len(rels))
	}
	if got, want := rels[0].TargetID, model.ExternalRef("@angular/core"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
}

func TestMissingSiblingImportIsExternal(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.component.ts", `
import { Gone } from './missing';
export class AppComponent {}
`)

	g := walkProject(t, root, nil, []string{"src/app.component.ts"})

	rels := findRel(t, g, model.FileID("src/app.component.ts"), model.RelImports)
	if len(rels) != 1 {
		t.Fatalf("import edges = %d, want 1", len(rels))
	}
	if got, want := rels[0].TargetID, model.ExternalRef("./missing"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
	// No File node is fabricated for the missing target.
	if _, ok := g.Get(model.FileID("src/missing.ts")); ok {
		t.Error("File node fabricated for nonexistent import target")
	}
}

func TestAliasImportResolves(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app/feature/list.component.ts", `
import { CoreService } from '@app/core/core.service';
export class ListComponent {}
`)
	writeSource(t, root, "src/app/core/core.service.ts", `export class CoreService {}`)

	aliases := []tsconfig.Alias{
		{Prefix: "@app/", Targets: []string{"src/app"}, Original: "@app/*"},
	}
	g := walkProject(t, root, aliases, []string{
		"src/app/feature/list.component.ts",
		"src/app/core/core.service.ts",
	})

	rels := findRel(t, g, model.FileID("src/app/feature/list.component.ts"), model.RelImports)
	if len(rels) != 1 {
		t.Fatalf("import edges = %d, want 1", len(rels))
	}
	if got, want := rels[0].TargetID, model.FileID("src/app/core/core.service.ts"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
}

func TestIndexFileResolution(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", `
import { helpers } from './util';
export class App {}
`)
	writeSource(t, root, "src/util/index.ts", `export const helpers = 1;`)

	g := walkProject(t, root, nil, []string{"src/app.ts", "src/util/index.ts"})

	rels := findRel(t, g, model.FileID("src/app.ts"), model.RelImports)
	if got, want := rels[0].TargetID, model.FileID("src/util/index.ts"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
}

func TestParentEscapeRejected(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", `
import { x } from '../../outside';
export class App {}
`)

	g := walkProject(t, root, nil, []string{"src/app.ts"})

	rels := findRel(t, g, model.FileID("src/app.ts"), model.RelImports)
	if got, want := rels[0].TargetID, model.ExternalRef("../../outside"); got != want {
		t.Errorf("target = %s, want %s", got, want)
	}
}

func TestWalkBuildsEntities(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/hero.service.ts", `
import { Injectable } from '@angular/core';

@Injectable({ providedIn: 'root' })
export class HeroService {}
`)
	writeSource(t, root, "src/hero.ts", `export interface Hero { id: number; }`)

	g := walkProject(t, root, nil, []string{"src/hero.service.ts", "src/hero.ts"})

	if _, ok := g.Get(model.EntityID(model.KindService, "HeroService", "src/hero.service.ts")); !ok {
		t.Error("service entity missing")
	}
	if _, ok := g.Get(model.EntityID(model.KindInterface, "Hero", "src/hero.ts")); !ok {
		t.Error("interface entity missing")
	}
}

func TestUnreadableFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/good.ts", `export class Good {}`)

	g := walkProject(t, root, nil, []string{"src/gone.ts", "src/good.ts"})

	if _, ok := g.Get(model.FileID("src/gone.ts")); ok {
		t.Error("File node created for unreadable file")
	}
	if _, ok := g.Get(model.FileID("src/good.ts")); !ok {
		t.Error("readable file missing from graph")
	}
}
