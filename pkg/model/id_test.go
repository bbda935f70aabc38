package model

import "testing"

func TestSplitID(t *testing.T) {
	tests := []struct {
		id   string
		kind string
		name string
		path string
		ok   bool
	}{
		{"Component:AppComponent:src/app/app.component.ts", "Component", "AppComponent", "src/app/app.component.ts", true},
		{"Service:DataService:UNKNOWN", "Service", "DataService", "UNKNOWN", true},
		{"UnknownExport:SharedThing:UNKNOWN", "UnknownExport", "SharedThing", "UNKNOWN", true},
		{"File:src/main.ts", "", "", "", false},
		{"justtext", "", "", "", false},
	}

	for _, tt := range tests {
		kind, name, path, ok := SplitID(tt.id)
		if ok != tt.ok {
			t.Errorf("SplitID(%q) ok = %v, want %v", tt.id, ok, tt.ok)
			continue
		}
		if kind != tt.kind || name != tt.name || path != tt.path {
			t.Errorf("SplitID(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.id, kind, name, path, tt.kind, tt.name, tt.path)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"Service:DataService:UNKNOWN", true},
		{"Unknown:Helper:src/app/app.module.ts", true},
		{"UnknownExport:SharedThing:UNKNOWN", true},
		{"Component:AppComponent:src/app/app.component.ts", false},
		{"External:@angular/core", false},
		{"Unresolved:Ghost", false},
	}

	for _, tt := range tests {
		if got := IsPlaceholder(tt.id); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestMarkers(t *testing.T) {
	if got := ExternalRef("@angular/core"); got != "External:@angular/core" {
		t.Errorf("ExternalRef = %q", got)
	}
	if got := UnresolvedRef("Ghost"); got != "Unresolved:Ghost" {
		t.Errorf("UnresolvedRef = %q", got)
	}
	if got := AmbiguousRef("DataService"); got != "Ambiguous:DataService" {
		t.Errorf("AmbiguousRef = %q", got)
	}
	if !IsExternalRef("External:rxjs") {
		t.Error("IsExternalRef failed for external marker")
	}
	if IsExternalRef("Service:X:UNKNOWN") {
		t.Error("IsExternalRef matched a placeholder")
	}
}
