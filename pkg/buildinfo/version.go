// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/stackscope/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/stackscope/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/stackscope/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/stackscope
package buildinfo

import "fmt"

// Name is the product name used in the CLI and outbound User-Agent headers.
const Name = "stackscope"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// UserAgent identifies stackscope to GitHub and to remote stackscope APIs,
// e.g. "stackscope/v1.2.3". GitHub rejects requests without one.
func UserAgent() string {
	return Name + "/" + Version
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
