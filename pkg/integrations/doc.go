// Package integrations provides the shared HTTP plumbing for upstream API clients.
//
// # Overview
//
// The only upstream today is the GitHub REST API, implemented in the
// [github] subpackage. [Client] holds what every upstream client needs:
//
//   - Default request headers (Accept, User-Agent, Authorization)
//   - JSON decoding of responses, with 204 No Content treated as empty
//   - Typed failures ([StatusError]) that keep the upstream status and message
//   - Request/response events through [observability.HTTP]
//
// # No Retry, No Cache
//
// Requests are issued once. A failed call propagates to the caller, which
// decides whether the failure is fatal (primary resource) or best effort
// (package.json, per-repository scans). Because nothing is cached, callers
// bound their own fan-out.
//
// # Usage
//
//	c := integrations.NewClient(nil, map[string]string{"Accept": "application/json"})
//	var out map[string]int64
//	if err := c.Get(ctx, url, &out); errors.Is(err, integrations.ErrNotFound) {
//	    // 404 upstream
//	}
//
// [github]: github.com/matzehuels/stackscope/pkg/integrations/github
// [observability.HTTP]: github.com/matzehuels/stackscope/pkg/observability.HTTP
package integrations
