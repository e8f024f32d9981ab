package debug_utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common/rw"
	"github.com/gorustyt/gocave/marching"
	"go.uber.org/zap"
)

// DuDumpCaveMeshToObj writes the floor mesh, and the wall skirt when
// walls is non-nil, as Wavefront OBJ.
func DuDumpCaveMeshToObj(mesh *marching.MeshData, walls *marching.WallMesh, w *rw.ReaderWriter) bool {
	if w == nil || mesh == nil {
		return false
	}

	w.WriteString("# Cave mesh\n")
	w.WriteString("o CaveMesh\n")
	w.WriteString("\n")
	for _, v := range mesh.Vertices {
		w.WriteString(fmt.Sprintf("v %f %f %f\n", v.X(), v.Y(), v.Z()))
	}
	w.WriteString("\n")
	for i := 0; i < mesh.TriangleCount(); i++ {
		t := mesh.Triangle(i)
		w.WriteString(fmt.Sprintf("f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1))
	}

	if walls == nil || len(walls.Vertices) == 0 {
		return true
	}
	base := len(mesh.Vertices)
	w.WriteString("\n")
	w.WriteString("o CaveWalls\n")
	w.WriteString("\n")
	for _, v := range walls.Vertices {
		w.WriteString(fmt.Sprintf("v %f %f %f\n", v.X(), v.Y(), v.Z()))
	}
	w.WriteString("\n")
	for i := 0; i+2 < len(walls.Triangles); i += 3 {
		w.WriteString(fmt.Sprintf("f %d %d %d\n",
			base+walls.Triangles[i]+1, base+walls.Triangles[i+1]+1, base+walls.Triangles[i+2]+1))
	}
	return true
}

// DuDumpCaveGrid writes g as text, top row first, followed by a newline
// per row.
func DuDumpCaveGrid(g *cave.Grid, w *rw.ReaderWriter) bool {
	if w == nil || g == nil {
		return false
	}
	w.WriteString(strings.Join(g.Rows(), "\n"))
	w.WriteString("\n")
	return true
}

// BuildTime is one labelled pipeline stage. Depth indents nested stages.
type BuildTime struct {
	Name     string
	Duration time.Duration
	Depth    int
}

func logLine(logger *zap.Logger, t BuildTime, pc float64) {
	logger.Info(strings.Repeat("    ", t.Depth)+"- "+t.Name,
		zap.Float64("ms", float64(t.Duration.Microseconds())/1000.0),
		zap.Float64("percent", float64(t.Duration.Microseconds())*pc),
	)
}

// DuLogBuildTimes logs each stage with its share of total.
func DuLogBuildTimes(logger *zap.Logger, times []BuildTime, total time.Duration) {
	if logger == nil {
		return
	}
	pc := 0.0
	if us := total.Microseconds(); us > 0 {
		pc = 100.0 / float64(us)
	}
	logger.Info("Build Times")
	for _, t := range times {
		logLine(logger, t, pc)
	}
	logger.Info("=== TOTAL", zap.Float64("ms", float64(total.Microseconds())/1000.0))
}
