// Package apiclient gives the CLI one way to obtain analysis views, whether
// they are computed in-process or fetched from a running stackscope API.
//
// [Analyzer] is implemented by [*analyzer.Service] (in-process) and by
// [*Client] (remote). [Cached] decorates either with a [cache.Cache], storing
// each response under cache.ResponseKey(endpoint, url).
//
// Remote API errors are decoded back into [*errors.Error] values carrying the
// server's code and message, so callers handle both modes the same way.
//
// [*analyzer.Service]: github.com/matzehuels/stackscope/pkg/analyzer.Service
// [cache.Cache]: github.com/matzehuels/stackscope/pkg/cache.Cache
// [*errors.Error]: github.com/matzehuels/stackscope/pkg/errors.Error
package apiclient
