package detect

import (
	"path"
	"sort"
	"strings"
)

// Detect infers technology labels from repository file names and the
// dependencies declared in package.json.
//
// files holds names or slash-separated paths relative to the repository root
// (".github/workflows" counts as the workflows directory). Matching is
// case-insensitive. Every dependency and devDependency name is added verbatim.
//
// The result is deduplicated case-insensitively, with rule labels taking
// precedence over dependency names of the same spelling, and sorted in byte
// order. It never returns nil. Detect is pure: permuting files or calling it
// again with the same inputs yields the same result.
func Detect(files []string, pkg PackageDetails) []string {
	set := newLabelSet()

	lowered := make([][2]string, 0, len(files))
	for _, f := range files {
		p := strings.ToLower(strings.Trim(f, "/"))
		if p == "" {
			continue
		}
		lowered = append(lowered, [2]string{p, path.Base(p)})
	}

	for _, r := range rules {
		for _, f := range lowered {
			if r.match(f[0], f[1]) {
				set.add(r.label)
				break
			}
		}
	}

	for _, name := range pkg.Names() {
		set.add(name)
	}

	return set.sorted()
}

// labelSet keeps the first spelling of each case-insensitive label.
type labelSet struct {
	seen   map[string]struct{}
	labels []string
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]struct{})}
}

func (s *labelSet) add(label string) {
	key := strings.ToLower(label)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.labels = append(s.labels, label)
}

func (s *labelSet) sorted() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	sort.Strings(out)
	return out
}

// Union merges label lists with the same case-insensitive deduplication as
// Detect. Earlier lists win on spelling.
func Union(lists ...[]string) []string {
	set := newLabelSet()
	for _, l := range lists {
		for _, label := range l {
			set.add(label)
		}
	}
	return set.sorted()
}
