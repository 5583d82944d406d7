// Package snapshot persists the client's last analysis.
//
// A [Snapshot] holds the URL that was analyzed together with the info,
// languages and technologies responses. The client restores it on the next
// run instead of refetching, and clears it whenever a different URL is
// analyzed. There is exactly one snapshot per store.
//
// Backends:
//   - [FileStore]: a JSON file in the user config directory (default)
//   - [RedisStore]: a single Redis key, shared between machines
//   - [MongoStore]: a single document in a MongoDB collection
//
// All backends return (nil, nil) from Load when nothing is stored.
package snapshot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackscope/pkg/analyzer"
)

// Key names the stored snapshot in every backend.
const Key = "repoAnalysis"

// Snapshot is the persisted result of one analysis.
type Snapshot struct {
	ID           string                       `json:"id"`
	RepoURL      string                       `json:"repoUrl"`
	RepoInfo     *analyzer.RepoInfoResult     `json:"repoInfo"`
	Languages    analyzer.LanguagesResult     `json:"languages"`
	Technologies *analyzer.TechnologiesResult `json:"technologies"`
	SavedAt      time.Time                    `json:"savedAt"`
}

// New stamps a snapshot with a fresh ID and the current time.
func New(repoURL string, info *analyzer.RepoInfoResult, langs analyzer.LanguagesResult, tech *analyzer.TechnologiesResult) *Snapshot {
	return &Snapshot{
		ID:           uuid.NewString(),
		RepoURL:      repoURL,
		RepoInfo:     info,
		Languages:    langs,
		Technologies: tech,
		SavedAt:      time.Now().UTC(),
	}
}

// Matches reports whether the snapshot was taken for rawURL. Surrounding
// whitespace and a trailing slash are ignored.
func (s *Snapshot) Matches(rawURL string) bool {
	return s != nil && normalize(s.RepoURL) == normalize(rawURL)
}

// Complete reports whether all three views are present.
func (s *Snapshot) Complete() bool {
	return s != nil && s.RepoInfo != nil && s.Languages != nil && s.Technologies != nil
}

func normalize(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// Store loads and saves the single client snapshot.
type Store interface {
	// Load returns the stored snapshot, or nil when none exists.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
	// Clear removes the snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close() error
}
