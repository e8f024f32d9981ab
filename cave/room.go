package cave

import "github.com/gorustyt/gocave/common"

// Room is a floor region that survived filtering, plus the tiles on its
// wall boundary and the rooms it has been linked to.
type Room struct {
	ID        int
	Tiles     Region
	EdgeTiles []Coord
	Connected []*Room
}

func NewRoom(id int, tiles Region, g *Grid) *Room {
	r := &Room{ID: id, Tiles: tiles}
	for _, tile := range tiles {
		for dir := 0; dir < 4; dir++ {
			if g.IsWall(tile.X+common.GetDirOffsetX(dir), tile.Y+common.GetDirOffsetY(dir)) {
				r.EdgeTiles = append(r.EdgeTiles, tile)
				break
			}
		}
	}
	return r
}

func (r *Room) Size() int { return len(r.Tiles) }

func (r *Room) IsConnected(other *Room) bool {
	for _, c := range r.Connected {
		if c == other {
			return true
		}
	}
	return false
}

func ConnectRooms(a, b *Room) {
	a.Connected = append(a.Connected, b)
	b.Connected = append(b.Connected, a)
}

// Passage records one link made by ConnectClosestRooms between the closest
// edge tiles of two rooms.
type Passage struct {
	RoomA, RoomB int
	TileA, TileB Coord
	DistSqr      int
}

// PassageMarker receives every passage as it is created, typically to draw
// a debug line between the two tiles.
type PassageMarker interface {
	MarkPassage(p Passage)
}

// FilterRegions removes wall regions smaller than wallThreshold and floor
// regions smaller than roomThreshold, in place, and returns the surviving
// floor regions as rooms.
func FilterRegions(g *Grid, wallThreshold, roomThreshold int) []*Room {
	for _, wallRegion := range RegionsOf(g, Wall) {
		if wallRegion.Len() < wallThreshold {
			for _, tile := range wallRegion {
				g.Set(tile.X, tile.Y, Floor)
			}
		}
	}

	var rooms []*Room
	for _, roomRegion := range RegionsOf(g, Floor) {
		if roomRegion.Len() < roomThreshold {
			for _, tile := range roomRegion {
				g.Set(tile.X, tile.Y, Wall)
			}
			continue
		}
		rooms = append(rooms, NewRoom(len(rooms), roomRegion, g))
	}
	return rooms
}

// ConnectClosestRooms links each room to the room whose edge tiles are
// nearest, in one greedy pass over rooms in order. A room that already has
// a link to any room reached during its scan is left alone, so the result
// is not guaranteed to be a connected graph. marker may be nil.
func ConnectClosestRooms(rooms []*Room, marker PassageMarker) []Passage {
	var passages []Passage
	for _, roomA := range rooms {
		possibleConnectionFound := false
		var best Passage
		var bestRoomB *Room

		for _, roomB := range rooms {
			if roomA == roomB {
				continue
			}
			if roomA.IsConnected(roomB) {
				possibleConnectionFound = false
				break
			}
			for _, tileA := range roomA.EdgeTiles {
				for _, tileB := range roomB.EdgeTiles {
					d := common.DistSqr2D(tileA.X, tileA.Y, tileB.X, tileB.Y)
					if d < best.DistSqr || !possibleConnectionFound {
						possibleConnectionFound = true
						best = Passage{RoomA: roomA.ID, RoomB: roomB.ID, TileA: tileA, TileB: tileB, DistSqr: d}
						bestRoomB = roomB
					}
				}
			}
		}

		if possibleConnectionFound {
			ConnectRooms(roomA, bestRoomB)
			passages = append(passages, best)
			if marker != nil {
				marker.MarkPassage(best)
			}
		}
	}
	return passages
}

// Clean filters small regions out of g and links the surviving rooms.
func Clean(g *Grid, wallThreshold, roomThreshold int) []*Room {
	rooms := FilterRegions(g, wallThreshold, roomThreshold)
	ConnectClosestRooms(rooms, nil)
	return rooms
}
