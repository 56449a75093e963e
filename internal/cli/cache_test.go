package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/aplet/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, appName) {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestFileCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{"nil config", nil, filepath.Join(xdg, appName)},
		{"unset dir", &config.Config{Dir: "/srv/line"}, filepath.Join(xdg, appName)},
		{"relative dir", &config.Config{Dir: "/srv/line", Cache: config.CacheConfig{Dir: ".aplet"}}, "/srv/line/.aplet"},
		{"absolute dir", &config.Config{Dir: "/srv/line", Cache: config.CacheConfig{Dir: "/var/cache/aplet"}}, "/var/cache/aplet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileCacheDir(tt.cfg)
			if err != nil {
				t.Fatalf("fileCacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("fileCacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheSelection(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name     string
		noCache  bool
		cfg      config.CacheConfig
		wantType string
	}{
		{"disabled by flag", true, config.CacheConfig{Enabled: true}, "*cache.NullCache"},
		{"disabled by config", false, config.CacheConfig{Enabled: false}, "*cache.NullCache"},
		{"file cache", false, config.CacheConfig{Enabled: true}, "*cache.FileCache"},
		{"unreachable redis falls back", false, config.CacheConfig{Enabled: true, RedisURL: "redis://127.0.0.1:1/0"}, "*cache.FileCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&strings.Builder{}, LogInfo)
			c.noCache = tt.noCache
			store, _ := c.newCache(t.Context(), &config.Config{ProjectName: "todoapp", Cache: tt.cfg})
			defer store.Close()

			if got := fmt.Sprintf("%T", store); got != tt.wantType {
				t.Errorf("newCache() = %s, want %s", got, tt.wantType)
			}
		})
	}
}
