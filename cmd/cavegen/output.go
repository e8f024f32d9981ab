package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorustyt/gocave/builder"
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common/rw"
	"github.com/gorustyt/gocave/debug_utils"
)

var allFormats = []string{"obj", "bin", "pb", "png", "txt"}

func encode(res *builder.Result, format string, ppu float32) ([]byte, error) {
	switch format {
	case "obj":
		w := rw.NewMeshDataBinWriter()
		debug_utils.DuDumpCaveMeshToObj(res.Mesh, res.Walls, w)
		return w.GetWriteBytes(), nil
	case "bin":
		return res.Mesh.ToBin(), nil
	case "pb":
		return res.Mesh.ToProto(), nil
	case "png":
		var buf bytes.Buffer
		if err := debug_utils.DuWriteCavePNG(&buf, res.Scene(), ppu/res.Config.SquareSize); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "txt":
		w := rw.NewMeshDataBinWriter()
		debug_utils.DuDumpCaveGrid(res.Grid, w)
		return w.GetWriteBytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// writeOutputs writes one file per format as dir/name.format.
func writeOutputs(res *builder.Result, dir, name string, formats []string, ppu float32) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, format := range formats {
		data, err := encode(res, format, ppu)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, name+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

type roomSummary struct {
	ID        int
	Size      int
	EdgeTiles int
	Connected []int
}

func summarizeRooms(rooms []*cave.Room) []roomSummary {
	out := make([]roomSummary, 0, len(rooms))
	for _, r := range rooms {
		s := roomSummary{ID: r.ID, Size: r.Size(), EdgeTiles: len(r.EdgeTiles)}
		for _, c := range r.Connected {
			s.Connected = append(s.Connected, c.ID)
		}
		out = append(out, s)
	}
	return out
}
