package builder

import (
	"fmt"
	"time"

	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
	"github.com/gorustyt/gocave/debug_utils"
	"github.com/gorustyt/gocave/marching"
	"go.uber.org/zap"
)

// Result holds every product of one build. Grid is the cleaned map, Bordered
// the padded copy the mesh was triangulated from.
type Result struct {
	Config    cave.Config
	Seed      string
	Grid      *cave.Grid
	Bordered  *cave.Grid
	Rooms     []*cave.Room
	Passages  []cave.Passage
	Markers   []debug_utils.PassageLine
	Mesh      *marching.MeshData
	Outlines  []marching.Outline
	Walls     *marching.WallMesh
	Colliders [][]common.Vec2
	Times     []debug_utils.BuildTime
	Total     time.Duration
}

// Scene returns the debug draw view of r.
func (r *Result) Scene() *debug_utils.CaveScene {
	return &debug_utils.CaveScene{
		Grid:       r.Bordered,
		RoomGrid:   r.Grid,
		Rooms:      r.Rooms,
		Passages:   r.Markers,
		Mesh:       r.Mesh,
		SquareSize: r.Config.SquareSize,
	}
}

type Option func(b *Builder)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithGrid skips random generation and smooths, cleans and meshes a copy
// of g instead. Width and height are taken from g.
func WithGrid(g *cave.Grid) Option {
	return func(b *Builder) {
		b.initial = g
	}
}

// WithDebugDraw draws every finished build into dd.
func WithDebugDraw(dd debug_utils.DuDebugDraw) Option {
	return func(b *Builder) {
		if dd != nil {
			b.dd = dd
		}
	}
}

// WithBuildTimes logs the per-stage timing table after each build.
func WithBuildTimes() Option {
	return func(b *Builder) {
		b.logTimes = true
	}
}

// Builder runs the full pipeline for one configuration. A Builder holds no
// state between builds but is not safe for concurrent use.
type Builder struct {
	cfg      cave.Config
	logger   *zap.Logger
	initial  *cave.Grid
	logTimes bool
	dd       debug_utils.DuDebugDraw

	times []debug_utils.BuildTime
	mark  time.Time
}

func New(cfg cave.Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, logger: zap.NewNop(), dd: debug_utils.NewDuDebugDraw()}
	for _, opt := range opts {
		opt(b)
	}
	if b.initial != nil {
		b.cfg.Width = b.initial.Width()
		b.cfg.Height = b.initial.Height()
	}
	return b
}

func (b *Builder) Config() cave.Config {
	return b.cfg
}

func (b *Builder) startTimer() {
	b.mark = time.Now()
}

func (b *Builder) stopTimer(name string, depth int) time.Duration {
	d := time.Since(b.mark)
	b.times = append(b.times, debug_utils.BuildTime{Name: name, Duration: d, Depth: depth})
	return d
}

func (b *Builder) Build() (*Result, error) {
	cfg := b.cfg
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	b.times = nil
	start := time.Now()

	//
	// Step 1. Resolve seed and produce the initial grid.
	//
	seed := cfg.Seed
	if cfg.UseRandomSeed {
		seed = cave.TimeSeed()
	}
	res := &Result{Config: cfg, Seed: seed}

	b.startTimer()
	var grid *cave.Grid
	if b.initial != nil {
		grid = b.initial.Clone()
	} else {
		var err error
		grid, err = cave.Generate(cfg.Width, cfg.Height, cfg.FillPercent, cave.SeedFromString(seed))
		if err != nil {
			return nil, fmt.Errorf("builder: %w", err)
		}
	}
	d := b.stopTimer("Generate", 0)
	b.logger.Debug("generated grid",
		zap.Int("width", grid.Width()), zap.Int("height", grid.Height()),
		zap.String("seed", seed), zap.Int("walls", grid.Count(cave.Wall)), zap.Duration("took", d))

	//
	// Step 2. Smooth with the cellular automaton.
	//
	b.startTimer()
	cave.Smooth(grid, cfg.SmoothIterations, cfg.SmoothMargin)
	d = b.stopTimer("Smooth", 0)
	b.logger.Debug("smoothed grid",
		zap.Int("iterations", cfg.SmoothIterations), zap.Int("walls", grid.Count(cave.Wall)), zap.Duration("took", d))

	//
	// Step 3. Drop small regions, then link the surviving rooms.
	//
	b.startTimer()
	res.Rooms = cave.FilterRegions(grid, cfg.WallThreshold, cfg.RoomThreshold)
	d = b.stopTimer("Filter Regions", 0)
	b.logger.Debug("filtered regions", zap.Int("rooms", len(res.Rooms)), zap.Duration("took", d))

	b.startTimer()
	recorder := debug_utils.NewPassageRecorder(grid, cfg.SquareSize)
	res.Passages = cave.ConnectClosestRooms(res.Rooms, recorder)
	res.Markers = recorder.Lines
	d = b.stopTimer("Connect Rooms", 1)
	b.logger.Debug("connected rooms", zap.Int("passages", len(res.Passages)), zap.Duration("took", d))
	res.Grid = grid

	//
	// Step 4. Pad with wall and triangulate.
	//
	b.startTimer()
	res.Bordered = cave.Bordered(grid, cfg.BorderSize)
	d = b.stopTimer("Border", 0)
	b.logger.Debug("bordered grid", zap.Int("border", cfg.BorderSize), zap.Duration("took", d))

	b.startTimer()
	res.Mesh = marching.Triangulate(res.Bordered, cfg.SquareSize)
	d = b.stopTimer("Triangulate", 0)
	b.logger.Debug("triangulated",
		zap.Int("vertices", len(res.Mesh.Vertices)), zap.Int("triangles", res.Mesh.TriangleCount()), zap.Duration("took", d))

	//
	// Step 5. Trace outlines and build wall geometry.
	//
	b.startTimer()
	res.Outlines = res.Mesh.CalculateOutlines()
	d = b.stopTimer("Trace Outlines", 0)
	b.logger.Debug("traced outlines", zap.Int("outlines", len(res.Outlines)), zap.Duration("took", d))

	b.startTimer()
	if cfg.WallHeight > 0 {
		res.Walls = marching.ExtrudeWalls(res.Mesh.Vertices, res.Outlines, cfg.WallHeight)
	}
	res.Colliders = marching.ColliderPaths(res.Mesh.Vertices, res.Outlines)
	b.stopTimer("Walls", 1)

	res.Total = time.Since(start)
	res.Times = b.times
	b.times = nil

	b.logger.Info("cave built",
		zap.String("seed", seed),
		zap.Int("width", cfg.Width), zap.Int("height", cfg.Height),
		zap.Int("rooms", len(res.Rooms)), zap.Int("passages", len(res.Passages)),
		zap.Int("vertices", len(res.Mesh.Vertices)), zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Int("outlines", len(res.Outlines)), zap.Duration("took", res.Total))
	if b.logTimes {
		debug_utils.DuLogBuildTimes(b.logger, res.Times, res.Total)
	}
	debug_utils.DuDebugDrawCave(b.dd, res.Scene())
	return res, nil
}
