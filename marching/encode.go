package marching

import (
	"errors"
	"fmt"

	"github.com/gorustyt/gocave/common"
	"github.com/gorustyt/gocave/common/message"
	"github.com/gorustyt/gocave/common/rw"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	meshMagic   = 'C'<<24 | 'A'<<16 | 'V'<<8 | 'M'
	meshVersion = 1
)

var (
	ErrBadMagic   = errors.New("marching: bad mesh magic")
	ErrBadVersion = errors.New("marching: bad mesh version")
	ErrBadIndex   = errors.New("marching: vertex index out of range")
)

// ToBin writes the mesh as little-endian binary:
// magic, version, vertex count, index count, interior count, outline count,
// then xyz floats, triangle indices, interior indices, and each outline as
// its length followed by its indices.
func (m *MeshData) ToBin() []byte {
	w := rw.NewMeshDataBinWriter()
	w.WriteUInt32(meshMagic)
	w.WriteUInt32(meshVersion)
	w.WriteInt32(len(m.Vertices))
	w.WriteInt32(len(m.Triangles))
	w.WriteInt32(len(m.Interior))
	w.WriteInt32(len(m.Outlines))
	w.WriteFloat32s(flattenVertices(m.Vertices))
	w.WriteInt32s(m.Triangles)
	w.WriteInt32s(m.Interior)
	for _, o := range m.Outlines {
		w.WriteInt32(len(o))
		w.WriteInt32s([]int(o))
	}
	return w.GetWriteBytes()
}

func (m *MeshData) FromBin(data []byte) error {
	r := rw.NewMeshDataBinReader(data)
	if magic := r.ReadUInt32(); r.Err() == nil && magic != meshMagic {
		return ErrBadMagic
	}
	if version := r.ReadUInt32(); r.Err() == nil && version != meshVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	nverts := int(r.ReadInt32())
	ntris := int(r.ReadInt32())
	ninterior := int(r.ReadInt32())
	noutlines := int(r.ReadInt32())
	if r.Err() != nil {
		return r.Err()
	}
	if err := checkCounts(r.Size(), nverts*3, ntris, ninterior, noutlines); err != nil {
		return err
	}

	flat := make([]float32, nverts*3)
	r.ReadFloat32s(flat)
	tris := make([]int32, ntris)
	r.ReadInt32s(tris)
	interior := make([]int32, ninterior)
	r.ReadInt32s(interior)
	outlines := make([]Outline, 0, noutlines)
	for i := 0; i < noutlines && r.Err() == nil; i++ {
		n := int(r.ReadInt32())
		if err := checkCounts(r.Size(), n); err != nil {
			return err
		}
		o := make([]int32, n)
		r.ReadInt32s(o)
		outlines = append(outlines, Outline(common.SliceTToSlice[int32, int](o)))
	}
	if r.Err() != nil {
		return r.Err()
	}

	res := MeshData{
		Vertices:  unflattenVertices(flat),
		Triangles: common.SliceTToSlice[int32, int](tris),
		Interior:  common.SliceTToSlice[int32, int](interior),
		Outlines:  outlines,
	}
	if err := res.Validate(); err != nil {
		return err
	}
	*m = res
	return nil
}

// checkCounts rejects negative counts and counts that cannot fit in the
// remaining bytes, each element being 4 bytes.
func checkCounts(remaining int, counts ...int) error {
	total := 0
	for _, c := range counts {
		if c < 0 {
			return fmt.Errorf("marching: negative element count %d", c)
		}
		total += c
	}
	if total*4 > remaining {
		return fmt.Errorf("marching: %d elements do not fit in %d bytes", total, remaining)
	}
	return nil
}

// Protobuf field numbers for
//
//	message CaveMesh {
//	  repeated float   vertices  = 1; // packed xyz triples
//	  repeated int32   triangles = 2;
//	  repeated int32   interior  = 3;
//	  repeated Outline outlines  = 4;
//	}
//	message Outline { repeated int32 indices = 1; }
const (
	fieldVertices  protowire.Number = 1
	fieldTriangles protowire.Number = 2
	fieldInterior  protowire.Number = 3
	fieldOutlines  protowire.Number = 4
	fieldIndices   protowire.Number = 1
)

func (m *MeshData) ToProto() []byte {
	var b []byte
	b = message.AppendPackedFloat32s(b, fieldVertices, flattenVertices(m.Vertices))
	b = message.AppendPackedInt32s(b, fieldTriangles, m.Triangles)
	b = message.AppendPackedInt32s(b, fieldInterior, m.Interior)
	for _, o := range m.Outlines {
		b = message.AppendMessage(b, fieldOutlines, message.AppendPackedInt32s(nil, fieldIndices, o))
	}
	return b
}

func (m *MeshData) FromProto(data []byte) error {
	var res MeshData
	var flat []float32
	err := message.Walk(data, func(f message.Field) error {
		var err error
		var values []int
		switch f.Num {
		case fieldVertices:
			var fs []float32
			fs, err = message.UnpackFloat32s(f.Bytes)
			flat = append(flat, fs...)
		case fieldTriangles:
			values, err = message.UnpackInt32s(f.Bytes)
			res.Triangles = append(res.Triangles, values...)
		case fieldInterior:
			values, err = message.UnpackInt32s(f.Bytes)
			res.Interior = append(res.Interior, values...)
		case fieldOutlines:
			var o Outline
			err = message.Walk(f.Bytes, func(sub message.Field) error {
				if sub.Num != fieldIndices {
					return nil
				}
				indices, err := message.UnpackInt32s(sub.Bytes)
				o = append(o, indices...)
				return err
			})
			res.Outlines = append(res.Outlines, o)
		}
		return err
	})
	if err != nil {
		return err
	}
	if len(flat)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats", message.ErrMalformed, len(flat))
	}
	res.Vertices = unflattenVertices(flat)
	if err := res.Validate(); err != nil {
		return err
	}
	*m = res
	return nil
}

// Validate checks that every index refers to an existing vertex.
func (m *MeshData) Validate() error {
	n := len(m.Vertices)
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("marching: %d triangle indices is not a multiple of 3", len(m.Triangles))
	}
	check := func(what string, indices []int) error {
		for _, v := range indices {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: %s index %d, %d vertices", ErrBadIndex, what, v, n)
			}
		}
		return nil
	}
	if err := check("triangle", m.Triangles); err != nil {
		return err
	}
	if err := check("interior", m.Interior); err != nil {
		return err
	}
	for _, o := range m.Outlines {
		if err := check("outline", o); err != nil {
			return err
		}
	}
	return nil
}

func flattenVertices(vs []common.Vec3) []float32 {
	res := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		res = append(res, v[0], v[1], v[2])
	}
	return res
}

func unflattenVertices(flat []float32) []common.Vec3 {
	res := make([]common.Vec3, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		res = append(res, common.Vec3{flat[i], flat[i+1], flat[i+2]})
	}
	return res
}
