package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/archlens/ngraph/pkg/model"
)

func buildGraph(t *testing.T) *model.Graph {
	t.Helper()
	g := model.NewGraph()
	file := g.EnsureFile("src/app/app.module.ts")
	mod := g.EnsureEntity(model.KindModule, "AppModule", "src/app/app.module.ts")
	file.AddRelationship(model.RelImports, model.ExternalRef("@angular/core"), map[string]any{"specifier": "@angular/core"})
	mod.AddRelationship(model.RelDeclares, "Component:AppComponent:src/app/app.component.ts", nil)
	g.EnsureEntity(model.KindUnknown, "Mystery", "src/app/misc.ts")
	return g
}

func TestBuildRecordsAllFields(t *testing.T) {
	doc := Build(buildGraph(t))

	if got, want := len(doc.Nodes), 3; got != want {
		t.Fatalf("node count = %d, want %d", got, want)
	}
	for _, n := range doc.Nodes {
		if n.ID == "" {
			t.Errorf("node with empty _id: %+v", n)
		}
		if len(n.Labels) != 2 || n.Labels[0] != "AngularEntity" {
			t.Errorf("node %s labels = %v", n.ID, n.Labels)
		}
		for _, key := range []string{"id", "name", "filePath", "type"} {
			if _, ok := n.Properties[key]; !ok {
				t.Errorf("node %s missing property %q", n.ID, key)
			}
		}
	}
}

func TestUnknownKindLabel(t *testing.T) {
	doc := Build(buildGraph(t))

	var found bool
	for _, n := range doc.Nodes {
		if n.Properties["name"] == "Mystery" {
			found = true
			if n.Labels[1] != "UnknownEntity" {
				t.Errorf("labels = %v, want second label UnknownEntity", n.Labels)
			}
		}
	}
	if !found {
		t.Fatal("Mystery node not emitted")
	}
}

func TestRelationshipRecords(t *testing.T) {
	doc := Build(buildGraph(t))

	if got, want := len(doc.Relationships), 2; got != want {
		t.Fatalf("relationship count = %d, want %d", got, want)
	}
	nodeIDs := map[string]bool{}
	for _, n := range doc.Nodes {
		nodeIDs[n.ID] = true
	}
	seen := map[string]bool{}
	for i, r := range doc.Relationships {
		if seen[r.ID] {
			t.Errorf("duplicate relationship id %s", r.ID)
		}
		seen[r.ID] = true
		if r.SourceID == "" || r.TargetID == "" || r.Type == "" {
			t.Errorf("relationship %d incomplete: %+v", i, r)
		}
		if r.Properties == nil {
			t.Errorf("relationship %s has nil properties", r.ID)
		}
		// Relationships are owned by their source: every source id must
		// name an emitted node.
		if !nodeIDs[r.SourceID] {
			t.Errorf("relationship %s source %s is not an emitted node", r.ID, r.SourceID)
		}
	}
	if doc.Relationships[0].ID != "rel:0" || doc.Relationships[1].ID != "rel:1" {
		t.Errorf("relationship ids = %s, %s", doc.Relationships[0].ID, doc.Relationships[1].ID)
	}
}

func TestWriteEmitsNonNullProperties(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(buildGraph(t))); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var round struct {
		Nodes []struct {
			ID         string          `json:"_id"`
			Labels     []string        `json:"labels"`
			Properties json.RawMessage `json:"properties"`
		} `json:"nodes"`
		Relationships []struct {
			ID         string          `json:"_id"`
			SourceID   string          `json:"_sourceId"`
			TargetID   string          `json:"_targetId"`
			Type       string          `json:"type"`
			Properties json.RawMessage `json:"properties"`
		} `json:"relationships"`
	}
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, r := range round.Relationships {
		if string(r.Properties) == "null" {
			t.Errorf("relationship %s serialized null properties", r.ID)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Write(&a, Build(buildGraph(t))); err != nil {
		t.Fatal(err)
	}
	if err := Write(&b, Build(buildGraph(t))); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two builds of the same graph serialized differently")
	}
}
