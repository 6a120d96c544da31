package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matchday-rundown/internal/config"
)

func cacheCtx(t *testing.T, target string, uid uint64) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if uid != 0 {
		c.Set("user_id", uid)
	}
	return c
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{Prefix: "rundown", KeyStrategy: "path_query"}
}

func TestCacheKey_stableForSameRequest(t *testing.T) {
	cfg := testCacheConfig()
	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/1/rundown", 7), "0")
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/1/rundown", 7), "0")
	if a != b {
		t.Fatalf("same request produced different keys: %s vs %s", a, b)
	}
}

// A mutation bumps the user's generation; the bumped generation must
// yield a fresh key so the entry cached before the mutation is never
// served again.
func TestCacheKey_changesWithGeneration(t *testing.T) {
	cfg := testCacheConfig()
	c := cacheCtx(t, "/v1/productions/1/rundown", 7)
	before := cacheKeyFrom(cfg, c, "3")
	after := cacheKeyFrom(cfg, c, "4")
	if before == after {
		t.Fatalf("key unchanged across generations: %s", before)
	}
}

func TestCacheKey_scopedToUser(t *testing.T) {
	cfg := testCacheConfig()
	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/1/rundown", 7), "0")
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/1/rundown", 8), "0")
	if a == b {
		t.Fatalf("two users share cache key %s", a)
	}
}

func TestCacheKey_scopedToConcretePath(t *testing.T) {
	cfg := testCacheConfig()
	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/1/rundown", 7), "0")
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/productions/2/rundown", 7), "0")
	if a == b {
		t.Fatalf("two productions share cache key %s", a)
	}
}

func TestGenerationKey_perUser(t *testing.T) {
	cfg := testCacheConfig()
	a := generationKey(cfg, cacheCtx(t, "/v1/productions", 7))
	b := generationKey(cfg, cacheCtx(t, "/v1/productions", 8))
	if a == b {
		t.Fatalf("two users share generation key %s", a)
	}
}
