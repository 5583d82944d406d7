package detect

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PackageJSONFile is the manifest Detect reads dependencies from.
const PackageJSONFile = "package.json"

// PackageDetails holds the dependency maps copied from a package.json.
// Both maps are always encoded as JSON objects, never null.
type PackageDetails struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// EmptyPackageDetails returns details with empty, non-nil maps.
func EmptyPackageDetails() PackageDetails {
	return PackageDetails{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}

// Merge copies other's entries into p. Entries from other replace existing
// versions of the same package.
func (p *PackageDetails) Merge(other PackageDetails) {
	if p.Dependencies == nil {
		p.Dependencies = map[string]string{}
	}
	if p.DevDependencies == nil {
		p.DevDependencies = map[string]string{}
	}
	for k, v := range other.Dependencies {
		p.Dependencies[k] = v
	}
	for k, v := range other.DevDependencies {
		p.DevDependencies[k] = v
	}
}

// Names returns dependency names followed by devDependency names, each group
// sorted. A name present in both groups is listed once.
func (p PackageDetails) Names() []string {
	deps := sortedKeys(p.Dependencies)
	out := make([]string, 0, len(deps)+len(p.DevDependencies))
	out = append(out, deps...)
	for _, k := range sortedKeys(p.DevDependencies) {
		if _, ok := p.Dependencies[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of distinct package names.
func (p PackageDetails) Len() int {
	return len(p.Names())
}

func (p PackageDetails) MarshalJSON() ([]byte, error) {
	type alias PackageDetails
	a := alias(p)
	if a.Dependencies == nil {
		a.Dependencies = map[string]string{}
	}
	if a.DevDependencies == nil {
		a.DevDependencies = map[string]string{}
	}
	return json.Marshal(a)
}

type packageFile struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ParsePackageJSON extracts dependencies and devDependencies from the
// contents of a package.json file. Missing sections yield empty maps.
func ParsePackageJSON(data []byte) (PackageDetails, error) {
	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return EmptyPackageDetails(), fmt.Errorf("parse %s: %w", PackageJSONFile, err)
	}

	details := EmptyPackageDetails()
	details.Merge(PackageDetails{Dependencies: pkg.Dependencies, DevDependencies: pkg.DevDependencies})
	return details, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
