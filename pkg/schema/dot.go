package schema

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackscope/pkg/detect"
)

// ToDOT converts a schema graph to Graphviz DOT format. Nodes are filled with
// their category color and grouped into one cluster per category.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#9CA3AF\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")

	byCategory := make(map[detect.Category][]Node)
	for _, n := range g.Nodes {
		byCategory[n.Category] = append(byCategory[n.Category], n)
	}

	for _, c := range detect.Categories {
		nodes := byCategory[c]
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph %q {\n", "cluster_"+string(c))
		fmt.Fprintf(&buf, "    label=%q;\n", c.Title())
		buf.WriteString("    style=\"rounded,dashed\";\n")
		fmt.Fprintf(&buf, "    color=%q;\n", c.Color())
		for _, n := range nodes {
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", n.ID, n.Label, n.Color)
		}
		buf.WriteString("  }\n")
	}

	if len(g.Links) > 0 {
		buf.WriteString("\n")
	}
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.Source, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the image scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Format names an output format for [Render].
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDOT, FormatSVG:
		return f, nil
	case "":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unknown format %q (use dot or svg)", s)
	}
}

// Render produces the graph in the given format.
func Render(ctx context.Context, g *Graph, f Format) ([]byte, error) {
	dot := ToDOT(g)
	switch f {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}
