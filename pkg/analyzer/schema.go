package analyzer

import (
	"context"

	"github.com/matzehuels/stackscope/pkg/schema"
)

// SchemaResult is the technology schema view: the graph plus the
// technologies it was built from.
type SchemaResult struct {
	schema.Graph
	AnalyzedRepoCount *int `json:"analyzedRepoCount,omitempty"`
}

// Schema builds the technology schema graph for a repository or owner.
func (s *Service) Schema(ctx context.Context, rawURL string) (*SchemaResult, error) {
	tech, err := s.Technologies(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return SchemaFrom(tech), nil
}

// SchemaFrom builds the schema from an existing technologies result.
func SchemaFrom(tech *TechnologiesResult) *SchemaResult {
	return &SchemaResult{
		Graph:             *schema.Build(tech.Technologies, tech.PackageDetails),
		AnalyzedRepoCount: tech.AnalyzedRepoCount,
	}
}
