// Package analyzer aggregates GitHub data into the views stackscope serves:
// repository info, language byte counts, detected technologies and the
// technology schema graph.
//
// # Targets
//
// Every operation takes the raw GitHub URL the user submitted. A repository
// URL (https://github.com/octocat/Hello-World) analyzes one repository. An
// owner URL (https://github.com/microsoft) is resolved as an organization,
// then as a user, and analyzes the owner's most starred repositories:
//
//   - Info: profile plus the top 6 repositories
//   - Languages: byte counts summed over the top 5
//   - Technologies: detection unioned over the top 3
//
// # Errors
//
// Errors are [errors.Error] values from pkg/errors:
//
//   - INVALID_INPUT / INVALID_URL for a blank or unparseable URL
//   - NOT_FOUND when an owner is neither organization nor user, or has no repositories
//   - NETWORK_ERROR / RATE_LIMITED for upstream failures of the primary resource
//
// Secondary fetches (package.json, per-repository scans in owner mode) never
// fail a request: they are logged and skipped.
//
// # Concurrency
//
// Independent GitHub calls of one request run in parallel with errgroup.
// A [Service] holds no per-request state and is safe for concurrent use.
//
// [errors.Error]: github.com/matzehuels/stackscope/pkg/errors.Error
package analyzer
