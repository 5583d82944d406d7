// Package schema builds and renders the technology schema of a repository:
// a graph whose nodes are detected technologies and dependencies, colored by
// category, and whose links show which technology builds on which.
//
// # Building
//
//	g := schema.Build(result.Technologies, result.PackageDetails)
//
// Node.js, when detected, links to every package.json dependency. A fixed
// set of well-known pairs (React → TypeScript, Express → Node.js,
// GitHub Actions → Docker, ...) is linked when both ends are present.
//
// # Rendering
//
// [ToDOT] emits Graphviz DOT with one cluster per category. [RenderSVG]
// lays it out with the embedded Graphviz build from go-graphviz, so no
// system installation is required.
package schema
