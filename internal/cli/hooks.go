package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackscope/pkg/observability"
)

// logHooks reports observability events as debug logs.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.AnalysisHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)

func (h *logHooks) OnAnalyzeStart(ctx context.Context, kind, target string) {
	h.logger.Debug("analyze", "kind", kind, "target", target)
}

func (h *logHooks) OnAnalyzeComplete(ctx context.Context, kind, target string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("analyze failed", "kind", kind, "target", target, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("analyzed", "kind", kind, "target", target, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnRepoSkipped(ctx context.Context, kind, repo string, err error) {
	h.logger.Debug("repository skipped", "kind", kind, "repo", repo, "err", err)
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "endpoint", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "endpoint", keyType)
}

func (h *logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "endpoint", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
