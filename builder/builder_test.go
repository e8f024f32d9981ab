package builder

import (
	"errors"
	"testing"

	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
	"github.com/gorustyt/gocave/debug_utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

func islandConfig() cave.Config {
	cfg := cave.DefaultConfig()
	cfg.SmoothIterations = 0
	cfg.WallThreshold = 0
	cfg.RoomThreshold = 0
	cfg.BorderSize = 1
	cfg.SquareSize = 1
	cfg.WallHeight = 5
	return cfg
}

func island() *cave.Grid {
	g := cave.NewGridFilled(10, 10, cave.Wall)
	g.FillRect(3, 3, 6, 6, cave.Floor)
	return g
}

func TestBuildIsland(t *testing.T) {
	src := island()
	res, err := New(islandConfig(), WithGrid(src)).Build()
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, src.Equal(island()), "input grid must not be modified")
	assertTrue(t, res.Grid.Equal(island()), "grid changed with thresholds 0 and no smoothing")

	if len(res.Rooms) != 1 {
		t.Fatalf("rooms = %d", len(res.Rooms))
	}
	room := res.Rooms[0]
	assertTrue(t, room.Size() == 16, "room size should be 16")
	assertTrue(t, len(room.EdgeTiles) == 12, "room should have 12 edge tiles")
	for _, c := range room.EdgeTiles {
		onRing := c.X == 3 || c.X == 6 || c.Y == 3 || c.Y == 6
		assertTrue(t, onRing, "edge tile off the square boundary")
	}
	assertTrue(t, len(res.Passages) == 0, "single room needs no passages")

	assertTrue(t, res.Bordered.Width() == 12 && res.Bordered.Height() == 12, "border should add one ring")
	if len(res.Outlines) != 1 {
		t.Fatalf("outlines = %d", len(res.Outlines))
	}
	o := res.Outlines[0]
	assertTrue(t, o.Closed(), "outline should be closed")
	assertTrue(t, len(o) == 17, "outline should visit 16 perimeter nodes and close")

	assertTrue(t, res.Walls != nil && len(res.Walls.Vertices) == 4*16, "4 wall vertices per segment")
	assertTrue(t, len(res.Walls.Triangles) == 6*16, "2 wall triangles per segment")
	assertTrue(t, len(res.Colliders) == 1 && len(res.Colliders[0]) == 17, "one collider path per outline")

	names := make([]string, 0, len(res.Times))
	for _, bt := range res.Times {
		names = append(names, bt.Name)
	}
	assertTrue(t, len(names) == 8 && names[0] == "Generate" && names[7] == "Walls", "unexpected stage timers")
}

func TestBuildNoWalls(t *testing.T) {
	cfg := islandConfig()
	cfg.WallHeight = 0
	res, err := New(cfg, WithGrid(island())).Build()
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, res.Walls == nil, "wall height 0 disables extrusion")
	assertTrue(t, len(res.Colliders) == 1, "colliders are built regardless")
}

func TestBuildDeterministic(t *testing.T) {
	cfg := cave.DefaultConfig()
	cfg.Width, cfg.Height = 48, 32
	cfg.WallThreshold, cfg.RoomThreshold = 10, 10
	cfg.Seed = "deterministic"

	a, err := New(cfg).Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg).Build()
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, a.Grid.Equal(b.Grid), "same seed must give the same grid")
	assertTrue(t, len(a.Mesh.Vertices) == len(b.Mesh.Vertices), "same seed must give the same mesh")
	assertTrue(t, len(a.Passages) == len(b.Passages), "same seed must give the same passages")
	for _, r := range a.Rooms {
		assertTrue(t, r.Size() >= cfg.RoomThreshold, "surviving room below threshold")
	}
	for _, wall := range cave.RegionsOf(a.Grid, cave.Wall) {
		assertTrue(t, wall.Len() >= cfg.WallThreshold, "surviving wall region below threshold")
	}
	assertTrue(t, len(a.Markers) == len(a.Passages), "one debug marker per passage")
}

func TestBuildInvalidConfig(t *testing.T) {
	cfg := cave.DefaultConfig()
	cfg.FillPercent = 101
	_, err := New(cfg).Build()
	if !errors.Is(err, cave.ErrInvalidFill) {
		t.Fatalf("err = %v", err)
	}

	cfg = cave.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	cfg.RoomThreshold = 16
	_, err = New(cfg).Build()
	if !errors.Is(err, cave.ErrInvalidThreshold) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := New(islandConfig(), WithGrid(island()), WithLogger(zap.New(core)), WithBuildTimes()).Build()
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, logs.FilterMessage("cave built").Len() == 1, "one info summary per build")
	assertTrue(t, logs.FilterMessage("triangulated").Len() == 1, "debug line per stage")
	assertTrue(t, logs.FilterMessage("Build Times").Len() == 1, "build time table")
}

func TestResultScene(t *testing.T) {
	res, err := New(islandConfig(), WithGrid(island())).Build()
	if err != nil {
		t.Fatal(err)
	}
	scene := res.Scene()
	assertTrue(t, scene.Grid == res.Bordered && scene.RoomGrid == res.Grid, "scene grids")
	assertTrue(t, scene.SquareSize == 1, "scene square size")
}

type countingDraw struct {
	begins, ends, verts int
}

func (d *countingDraw) Begin(prim debug_utils.DuDebugDrawPrimitives, size ...float32) { d.begins++ }
func (d *countingDraw) Vertex(pos common.Vec3, color debug_utils.Colorb)              { d.verts++ }
func (d *countingDraw) Vertex1(x, y, z float32, color debug_utils.Colorb)             { d.verts++ }
func (d *countingDraw) End()                                                          { d.ends++ }

func TestBuildDebugDraw(t *testing.T) {
	dd := &countingDraw{}
	if _, err := New(islandConfig(), WithGrid(island()), WithDebugDraw(dd)).Build(); err != nil {
		t.Fatal(err)
	}
	assertTrue(t, dd.begins > 0 && dd.begins == dd.ends, "every Begin must be matched by End")
	assertTrue(t, dd.verts >= 4*12*12, "at least one quad per bordered tile")
}
