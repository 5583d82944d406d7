// Package pkg provides the core libraries for stackscope, a GitHub repository
// analyzer.
//
// # Overview
//
// stackscope takes a GitHub URL (a repository, an organization or a user) and
// reports repository info and contributors, a language breakdown and the
// detected technology stack. The pkg directory is organized into three areas:
//
//  1. Domain logic: [analyzer], [detect] and [schema]
//  2. Infrastructure: [cache], [snapshot], [observability], [httputil] and [errors]
//  3. External APIs: [integrations], [integrations/github] and [apiclient]
//
// # Architecture
//
// The data flow for one analysis:
//
//	GitHub URL
//	     ↓
//	[integrations/github] ParseURL → RepoRef
//	     ↓
//	[analyzer] fan-out over the GitHub REST API (errgroup)
//	     ↓
//	[detect] technologies from file names and package.json
//	     ↓
//	info / languages / technologies / [schema] graph
//
// The HTTP API (internal/server) serves these views as JSON. The CLI
// (internal/cli) consumes them either in-process or through [apiclient],
// caches responses with [cache] and keeps the last analysis in [snapshot].
//
// # Quick Start
//
//	gh := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//	svc := analyzer.NewService(gh, nil)
//
//	tech, err := svc.Technologies(ctx, "https://github.com/octocat/Hello-World")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tech.Technologies)
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis, MongoDB and GitHub tests
//
// [analyzer]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/analyzer
// [detect]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/detect
// [schema]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/schema
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/cache
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/snapshot
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/errors
// [integrations]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/integrations/github
// [apiclient]: https://pkg.go.dev/github.com/matzehuels/stackscope/pkg/apiclient
package pkg
