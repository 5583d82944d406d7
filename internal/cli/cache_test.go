package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackscope/internal/config"
	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/apiclient"
	"github.com/matzehuels/stackscope/pkg/cache"
	"github.com/matzehuels/stackscope/pkg/snapshot"
)

func testCLI(t *testing.T, mutate func(*config.Config)) *CLI {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Dir = t.TempDir()
	cfg.Cache.Dir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}
	c := New(io.Discard, log.InfoLevel)
	c.cfg = cfg
	return c
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		c := testCLI(t, nil)
		ch, err := c.openCache(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		defer ch.Close()
		fc, ok := ch.(*cache.FileCache)
		if !ok {
			t.Fatalf("openCache() = %T, want *cache.FileCache", ch)
		}
		if fc.Dir() != c.cfg.Cache.Dir {
			t.Errorf("Dir() = %q, want %q", fc.Dir(), c.cfg.Cache.Dir)
		}
	})

	t.Run("none", func(t *testing.T) {
		c := testCLI(t, func(cfg *config.Config) { cfg.Cache.Backend = config.BackendNone })
		ch, err := c.openCache(ctx, false)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := ch.(*cache.NullCache); !ok {
			t.Errorf("openCache() = %T, want *cache.NullCache", ch)
		}
	})

	t.Run("disabled by flag", func(t *testing.T) {
		c := testCLI(t, nil)
		ch, err := c.openCache(ctx, true)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := ch.(*cache.NullCache); !ok {
			t.Errorf("openCache() = %T, want *cache.NullCache", ch)
		}
	})
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	c := testCLI(t, nil)
	store, err := c.openStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	fs, ok := store.(*snapshot.FileStore)
	if !ok {
		t.Fatalf("openStore() = %T, want *snapshot.FileStore", store)
	}
	if want := filepath.Join(c.cfg.Store.Dir, snapshot.Key+".json"); fs.Path() != want {
		t.Errorf("Path() = %q, want %q", fs.Path(), want)
	}

	bad := testCLI(t, func(cfg *config.Config) { cfg.Store.Backend = "sqlite" })
	if _, err := bad.openStore(ctx); err == nil {
		t.Error("openStore() with unknown backend should fail")
	}
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()
	local := testCLI(t, nil)
	if b := local.newBackend(ctx); !isService(b) {
		t.Errorf("newBackend() = %T, want *analyzer.Service", b)
	}

	remote := testCLI(t, func(cfg *config.Config) { cfg.Client.APIURL = "http://localhost:5000/" })
	b := remote.newBackend(ctx)
	cl, ok := b.(*apiclient.Client)
	if !ok {
		t.Fatalf("newBackend() = %T, want *apiclient.Client", b)
	}
	if cl.BaseURL() != "http://localhost:5000" {
		t.Errorf("BaseURL() = %q", cl.BaseURL())
	}
}

func isService(b apiclient.Analyzer) bool {
	_, ok := b.(*analyzer.Service)
	return ok
}

func TestNewBackendChecksRemoteAtDebug(t *testing.T) {
	var pings atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			pings.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"stackscope API running"}`)
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name      string
		level     log.Level
		wantPings int64
	}{
		{"info", log.InfoLevel, 0},
		{"debug", log.DebugLevel, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pings.Store(0)
			var buf bytes.Buffer
			c := testCLI(t, func(cfg *config.Config) { cfg.Client.APIURL = srv.URL })
			c.Logger = newLogger(&buf, tt.level)

			c.newBackend(context.Background())

			if got := pings.Load(); got != tt.wantPings {
				t.Errorf("pings = %d, want %d", got, tt.wantPings)
			}
			if tt.wantPings > 0 && !strings.Contains(buf.String(), "using remote API") {
				t.Errorf("log = %q, want reachability message", buf.String())
			}
		})
	}
}

func TestNewBackendWarnsWhenRemoteDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	var buf bytes.Buffer
	c := testCLI(t, func(cfg *config.Config) { cfg.Client.APIURL = addr })
	c.Logger = newLogger(&buf, log.DebugLevel)

	if _, ok := c.newBackend(context.Background()).(*apiclient.Client); !ok {
		t.Fatal("an unreachable API should still yield the remote client")
	}
	if !strings.Contains(buf.String(), "remote API unreachable") {
		t.Errorf("log = %q, want unreachable warning", buf.String())
	}
}
