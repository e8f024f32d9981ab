package server

import (
	"github.com/gorustyt/gocave/builder"
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
)

type roomResponse struct {
	ID        int          `json:"id"`
	Size      int          `json:"size"`
	EdgeTiles []cave.Coord `json:"edge_tiles"`
	Connected []int        `json:"connected"`
}

type passageResponse struct {
	RoomA   int         `json:"room_a"`
	RoomB   int         `json:"room_b"`
	TileA   cave.Coord  `json:"tile_a"`
	TileB   cave.Coord  `json:"tile_b"`
	DistSqr int         `json:"dist_sqr"`
	From    common.Vec3 `json:"from"`
	To      common.Vec3 `json:"to"`
}

type meshResponse struct {
	Vertices  []common.Vec3 `json:"vertices"`
	Triangles []int         `json:"triangles"`
	Outlines  [][]int       `json:"outlines"`
	Areas     []float32     `json:"outline_areas"`
}

type caveResponse struct {
	Config    cave.Config       `json:"config"`
	Seed      string            `json:"seed"`
	Rows      []string          `json:"rows"`
	Rooms     []roomResponse    `json:"rooms"`
	Passages  []passageResponse `json:"passages"`
	Mesh      meshResponse      `json:"mesh"`
	Colliders [][]common.Vec2   `json:"colliders"`
	WallVerts int               `json:"wall_vertices"`
	BuildMs   float64           `json:"build_ms"`
}

func newCaveResponse(res *builder.Result) *caveResponse {
	out := &caveResponse{
		Config:    res.Config,
		Seed:      res.Seed,
		Rows:      res.Grid.Rows(),
		Rooms:     make([]roomResponse, 0, len(res.Rooms)),
		Passages:  make([]passageResponse, 0, len(res.Passages)),
		Colliders: res.Colliders,
		BuildMs:   float64(res.Total.Microseconds()) / 1000.0,
	}
	for _, r := range res.Rooms {
		rr := roomResponse{ID: r.ID, Size: r.Size(), EdgeTiles: r.EdgeTiles, Connected: make([]int, 0, len(r.Connected))}
		for _, c := range r.Connected {
			rr.Connected = append(rr.Connected, c.ID)
		}
		out.Rooms = append(out.Rooms, rr)
	}
	for i, p := range res.Passages {
		pr := passageResponse{RoomA: p.RoomA, RoomB: p.RoomB, TileA: p.TileA, TileB: p.TileB, DistSqr: p.DistSqr}
		if i < len(res.Markers) {
			pr.From, pr.To = res.Markers[i].From, res.Markers[i].To
		}
		out.Passages = append(out.Passages, pr)
	}
	out.Mesh = meshResponse{
		Vertices:  res.Mesh.Vertices,
		Triangles: res.Mesh.Triangles,
		Outlines:  make([][]int, 0, len(res.Outlines)),
	}
	for _, o := range res.Outlines {
		out.Mesh.Outlines = append(out.Mesh.Outlines, o)
		out.Mesh.Areas = append(out.Mesh.Areas, o.SignedArea(res.Mesh.Vertices))
	}
	if res.Walls != nil {
		out.WallVerts = len(res.Walls.Vertices)
	}
	return out
}
