// Package github provides an HTTP client for the GitHub REST API and the
// URL parsing used to pick an analysis target.
//
// # Overview
//
// [Client] wraps the handful of endpoints needed to analyze a repository or
// an owner's repositories (https://api.github.com):
//
//   - [Client.Repository], [Client.Contributors], [Client.Languages]
//   - [Client.Contents] and [Client.File] for detection inputs
//   - [Client.Organization], [Client.OrgRepos], [Client.User], [Client.UserRepos]
//     for owner-only targets
//
// # Usage
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//
//	ref, err := github.ParseURL("https://github.com/octocat/Hello-World")
//	if err != nil {
//	    return err
//	}
//	repo, err := client.Repository(ctx, ref.Owner, ref.Repo)
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour. The token is sent as
// "Authorization: token <value>".
//
// # Errors
//
// Non-2xx responses surface as [integrations.StatusError], so callers can
// test them with errors.Is against [integrations.ErrNotFound],
// [integrations.ErrRateLimited] and [integrations.ErrNetwork].
//
// # URL Parsing
//
// [ParseURL] is the authoritative parser: it accepts any http(s) URL on
// github.com and distinguishes owner URLs from repository URLs.
// [ValidateEntryURL] is the stricter shape check applied to user input
// before any request is made.
package github
