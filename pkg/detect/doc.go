// Package detect infers a repository's technology stack from file names and
// package.json dependencies.
//
// Detection is heuristic pattern matching, not dependency resolution: a file
// named "docker-compose.yml" yields "Docker", any "*.ts" file yields
// "TypeScript", and every package.json dependency name is reported as-is.
//
//	details, err := detect.ParsePackageJSON(data)
//	if err != nil {
//	    details = detect.EmptyPackageDetails()
//	}
//	labels := detect.Detect([]string{"package.json", "Dockerfile"}, details)
//	// [Docker Node.js <dependency names...>]
//
// [Categorize] maps labels to presentation categories (frontend, backend,
// database, devops, testing, mobile, tools, other), each with a display color.
package detect
