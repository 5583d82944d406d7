package detect

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParsePackageJSON(t *testing.T) {
	data := []byte(`{
		"name": "my-app",
		"version": "1.0.0",
		"dependencies": {"express": "^4.18.0", "mongoose": "^7.0.0"},
		"devDependencies": {"jest": "^29.0.0"},
		"peerDependencies": {"react": "^18.0.0"}
	}`)

	got, err := ParsePackageJSON(data)
	if err != nil {
		t.Fatalf("ParsePackageJSON() error: %v", err)
	}
	if got.Dependencies["express"] != "^4.18.0" || got.Dependencies["mongoose"] != "^7.0.0" {
		t.Errorf("Dependencies = %v", got.Dependencies)
	}
	if got.DevDependencies["jest"] != "^29.0.0" {
		t.Errorf("DevDependencies = %v", got.DevDependencies)
	}
	if _, ok := got.Dependencies["react"]; ok {
		t.Error("peerDependencies should not be included")
	}
}

func TestParsePackageJSONMissingSections(t *testing.T) {
	got, err := ParsePackageJSON([]byte(`{"name":"bare"}`))
	if err != nil {
		t.Fatalf("ParsePackageJSON() error: %v", err)
	}
	if got.Dependencies == nil || got.DevDependencies == nil {
		t.Errorf("maps should be non-nil: %+v", got)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestParsePackageJSONMalformed(t *testing.T) {
	for _, in := range []string{`{not json`, `{"dependencies": ["a", "b"]}`, ``} {
		got, err := ParsePackageJSON([]byte(in))
		if err == nil {
			t.Errorf("ParsePackageJSON(%q) expected error", in)
		}
		if got.Dependencies == nil || got.DevDependencies == nil {
			t.Errorf("ParsePackageJSON(%q) should still return empty maps", in)
		}
	}
}

func TestPackageDetailsMerge(t *testing.T) {
	var p PackageDetails
	p.Merge(PackageDetails{Dependencies: map[string]string{"react": "^17.0.0"}})
	p.Merge(PackageDetails{
		Dependencies:    map[string]string{"react": "^18.0.0", "vue": "^3"},
		DevDependencies: map[string]string{"jest": "^29"},
	})

	want := PackageDetails{
		Dependencies:    map[string]string{"react": "^18.0.0", "vue": "^3"},
		DevDependencies: map[string]string{"jest": "^29"},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Merge() = %+v, want %+v", p, want)
	}
}

func TestPackageDetailsNames(t *testing.T) {
	p := PackageDetails{
		Dependencies:    map[string]string{"zod": "3", "axios": "1"},
		DevDependencies: map[string]string{"axios": "1", "vitest": "1", "eslint": "8"},
	}
	want := []string{"axios", "zod", "eslint", "vitest"}
	if got := p.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %q, want %q", got, want)
	}
	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}
}

func TestPackageDetailsJSONNeverNull(t *testing.T) {
	data, err := json.Marshal(PackageDetails{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"dependencies":{},"devDependencies":{}}` {
		t.Errorf("Marshal() = %s", data)
	}

	wrapped, err := json.Marshal(struct {
		Details PackageDetails `json:"packageDetails"`
	}{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(wrapped) != `{"packageDetails":{"dependencies":{},"devDependencies":{}}}` {
		t.Errorf("Marshal() = %s", wrapped)
	}
}
