package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/config"
	"github.com/gorustyt/gocave/marching"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 32, 24
	cfg.WallThreshold, cfg.RoomThreshold = 8, 8
	cfg.Seed = "server"
	s, err := New(nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestCaveJSON(t *testing.T) {
	s := newTestServer(t)
	rec := get(s, "/cave?width=20&height=16&seed=abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp caveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Config.Width != 20 || resp.Config.Height != 16 || resp.Seed != "abc" {
		t.Errorf("config = %+v seed = %q", resp.Config, resp.Seed)
	}
	if len(resp.Rows) != 16 || len(resp.Rows[0]) != 20 {
		t.Errorf("rows = %d", len(resp.Rows))
	}
	if len(resp.Mesh.Areas) != len(resp.Mesh.Outlines) {
		t.Errorf("areas = %d outlines = %d", len(resp.Mesh.Areas), len(resp.Mesh.Outlines))
	}
	for _, o := range resp.Mesh.Outlines {
		if len(o) < 2 || o[0] != o[len(o)-1] {
			t.Errorf("outline not closed: %v", o)
		}
	}
	if len(resp.Passages) > 0 && resp.Passages[0].From == resp.Passages[0].To {
		t.Errorf("passage marker has no length: %+v", resp.Passages[0])
	}
}

func TestCaveCached(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		if rec := get(s, "/cave?seed=cached"); rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
	}
	if n := s.builds.Load(); n != 1 {
		t.Errorf("builds = %d, want 1", n)
	}
	get(s, "/cave?seed=other")
	if n := s.builds.Load(); n != 2 {
		t.Errorf("builds = %d, want 2", n)
	}
}

func TestCaveConcurrentRequests(t *testing.T) {
	s := newTestServer(t)
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = get(s, "/cave.bin?seed=concurrent").Code
		}(i)
	}
	wg.Wait()
	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d: code = %d", i, code)
		}
	}
}

func TestCaveBadRequest(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{
		"/cave?width=-1",
		"/cave?width=abc",
		"/cave?fill_percent=101",
		"/cave?room_threshold=100000",
		"/cave?width=5000&height=5000",
		"/cave?width=1099511627776&height=1&border_size=4611686018427387904",
		"/cave.bin?wall_height=NaN",
		"/cave.bin?square_size=Inf",
		"/cave.png?ppu=0",
		"/cave.png?width=1000&height=1000&ppu=32",
	} {
		rec := get(s, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: code = %d", target, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Errorf("%s: body = %s", target, rec.Body.String())
		}
	}
	if n := s.builds.Load(); n != 0 {
		t.Errorf("rejected requests built %d caves", n)
	}
}

func TestCaveProto(t *testing.T) {
	s := newTestServer(t)
	rec := get(s, "/cave.pb")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var m marching.MeshData
	if err := m.FromProto(rec.Body.Bytes()); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) == 0 || m.TriangleCount() == 0 {
		t.Errorf("empty mesh: %d vertices", len(m.Vertices))
	}

	bin := get(s, "/cave.bin")
	var fromBin marching.MeshData
	if err := fromBin.FromBin(bin.Body.Bytes()); err != nil {
		t.Fatal(err)
	}
	if len(fromBin.Vertices) != len(m.Vertices) || len(fromBin.Outlines) != len(m.Outlines) {
		t.Errorf("bin and proto disagree")
	}
}

func TestCavePNGAndObj(t *testing.T) {
	s := newTestServer(t)
	rec := get(s, "/cave.png?ppu=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	// 32x24 plus a one tile border on each side, at 2 pixels per tile.
	if img.Bounds().Dx() != 68 || img.Bounds().Dy() != 52 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	obj := get(s, "/cave.obj")
	if obj.Code != http.StatusOK || !strings.HasPrefix(obj.Body.String(), "# Cave mesh") {
		t.Errorf("obj code = %d", obj.Code)
	}
}

func TestCheckLimitsOverflow(t *testing.T) {
	cfg := cave.DefaultConfig()
	cfg.Width, cfg.Height, cfg.BorderSize = 1<<40, 1, 1<<62
	if err := checkLimits(cfg, defaultMaxCells); !errors.Is(err, ErrTooLarge) {
		t.Errorf("overflowing border: err = %v", err)
	}

	cfg = cave.DefaultConfig()
	cfg.Width, cfg.Height, cfg.BorderSize = 1022, 1022, 1
	if err := checkLimits(cfg, defaultMaxCells); err != nil {
		t.Errorf("1024x1024 bordered grid should fit: %v", err)
	}
	if err := checkPixels(cfg, 32, maxPixels); !errors.Is(err, ErrTooLarge) {
		t.Errorf("32 pixels per tile: err = %v", err)
	}
	if err := checkPixels(cfg, 4, maxPixels); err != nil {
		t.Errorf("4 pixels per tile should fit: %v", err)
	}
}

func TestCacheKeyDistinct(t *testing.T) {
	a := cave.DefaultConfig()
	b := a
	b.Width = 40
	if cacheKey(a) == cacheKey(b) {
		t.Errorf("configs differing in width share key %q", cacheKey(a))
	}
	if cacheKey(a) != cacheKey(cave.DefaultConfig()) {
		t.Error("equal configs must share a key")
	}
}

func TestDistinctConfigsBuildSeparately(t *testing.T) {
	s := newTestServer(t)
	small := get(s, "/cave.bin?width=20&height=20")
	large := get(s, "/cave.bin?width=40&height=30")
	if small.Code != http.StatusOK || large.Code != http.StatusOK {
		t.Fatalf("codes = %d, %d", small.Code, large.Code)
	}
	if bytes.Equal(small.Body.Bytes(), large.Body.Bytes()) {
		t.Error("different sizes returned the same mesh")
	}
	if n := s.builds.Load(); n != 2 {
		t.Errorf("builds = %d, want 2", n)
	}
}
