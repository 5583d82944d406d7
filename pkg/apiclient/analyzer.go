package apiclient

import (
	"context"

	"github.com/matzehuels/stackscope/pkg/analyzer"
)

// Analyzer produces the info, languages, technologies and schema views for a
// GitHub URL.
type Analyzer interface {
	Info(ctx context.Context, rawURL string) (*analyzer.RepoInfoResult, error)
	Languages(ctx context.Context, rawURL string) (analyzer.LanguagesResult, error)
	Technologies(ctx context.Context, rawURL string) (*analyzer.TechnologiesResult, error)
	Schema(ctx context.Context, rawURL string) (*analyzer.SchemaResult, error)
}

var (
	_ Analyzer = (*analyzer.Service)(nil)
	_ Analyzer = (*Client)(nil)
	_ Analyzer = (*Cached)(nil)
)
