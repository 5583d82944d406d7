package schema

import (
	"strings"

	"github.com/matzehuels/stackscope/pkg/detect"
)

// NodeJS is the runtime every package.json dependency hangs off.
const NodeJS = "Node.js"

// Node is a technology in the schema graph.
type Node struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Category detect.Category `json:"category"`
	Color    string          `json:"color"`
}

// Link is a directed "uses" edge between two technologies.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the technology schema of a repository.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// relations are well-known edges added when both ends are present.
var relations = []Link{
	{"React", "TypeScript"},
	{"React", "JavaScript"},
	{"Vue.js", "JavaScript"},
	{"Angular", "TypeScript"},
	{"Express", NodeJS},
	{"Mongoose", "MongoDB"},
	{"Sequelize", "PostgreSQL"},
	{"Sequelize", "MySQL"},
	{"GitHub Actions", "Docker"},
	{"Travis CI", "Docker"},
}

// Build assembles the schema graph from detected technologies and the
// package dependencies behind them.
//
// Every technology and dependency becomes one node (case-insensitive
// identity, first spelling wins), categorized with [detect.Categorize].
// When Node.js is present, it links to every dependency. Well-known pairs
// such as React → TypeScript are linked when both ends exist.
func Build(technologies []string, pkg detect.PackageDetails) *Graph {
	b := &builder{
		g:     &Graph{Nodes: []Node{}, Links: []Link{}},
		ids:   make(map[string]string),
		links: make(map[Link]struct{}),
	}

	for _, t := range technologies {
		b.addNode(t)
	}
	deps := pkg.Names()
	for _, d := range deps {
		b.addNode(d)
	}

	if _, ok := b.id(NodeJS); ok {
		for _, d := range deps {
			b.link(NodeJS, d)
		}
	}
	for _, r := range relations {
		b.link(r.Source, r.Target)
	}
	return b.g
}

// Node returns the node with the given ID (case-insensitive).
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if strings.EqualFold(n.ID, id) {
			return n, true
		}
	}
	return Node{}, false
}

// Neighbors returns the IDs of nodes linked from id.
func (g *Graph) Neighbors(id string) []string {
	var out []string
	for _, l := range g.Links {
		if l.Source == id {
			out = append(out, l.Target)
		}
	}
	return out
}

type builder struct {
	g     *Graph
	ids   map[string]string // lowercased label -> node ID
	links map[Link]struct{}
}

func (b *builder) id(label string) (string, bool) {
	id, ok := b.ids[strings.ToLower(label)]
	return id, ok
}

func (b *builder) addNode(label string) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return
	}
	if _, ok := b.ids[key]; ok {
		return
	}
	b.ids[key] = label
	c := detect.Categorize(label)
	b.g.Nodes = append(b.g.Nodes, Node{
		ID:       label,
		Label:    label,
		Category: c,
		Color:    c.Color(),
	})
}

// link adds source -> target when both nodes exist, resolving either end to
// the spelling already in the graph. Self-links and duplicates are dropped.
func (b *builder) link(source, target string) {
	s, ok := b.id(source)
	if !ok {
		return
	}
	t, ok := b.id(target)
	if !ok || s == t {
		return
	}
	l := Link{Source: s, Target: t}
	if _, dup := b.links[l]; dup {
		return
	}
	b.links[l] = struct{}{}
	b.g.Links = append(b.g.Links, l)
}
