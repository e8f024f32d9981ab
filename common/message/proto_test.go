package message

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestWalkPacked(t *testing.T) {
	var b []byte
	b = AppendVarint(b, 1, 42)
	b = AppendPackedFloat32s(b, 2, []float32{0.5, -1, 3})
	b = AppendPackedInt32s(b, 3, []int{0, 7, -2, 300})
	b = AppendMessage(b, 4, AppendVarint(nil, 1, 9))

	var gotVarint uint64
	var floats []float32
	var ints []int
	var sub []byte
	err := Walk(b, func(f Field) error {
		var err error
		switch f.Num {
		case 1:
			gotVarint = f.Varint
		case 2:
			floats, err = UnpackFloat32s(f.Bytes)
		case 3:
			ints, err = UnpackInt32s(f.Bytes)
		case 4:
			sub = f.Bytes
		}
		return err
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if gotVarint != 42 {
		t.Errorf("varint = %d", gotVarint)
	}
	if len(floats) != 3 || floats[0] != 0.5 || floats[1] != -1 || floats[2] != 3 {
		t.Errorf("floats = %v", floats)
	}
	if len(ints) != 4 || ints[2] != -2 || ints[3] != 300 {
		t.Errorf("ints = %v", ints)
	}
	var inner uint64
	if err := Walk(sub, func(f Field) error { inner = f.Varint; return nil }); err != nil || inner != 9 {
		t.Errorf("sub message = %d, %v", inner, err)
	}
}

func TestEmptyPackedOmitted(t *testing.T) {
	if b := AppendPackedFloat32s(nil, 1, nil); len(b) != 0 {
		t.Errorf("empty packed floats should be omitted")
	}
	if b := AppendPackedInt32s(nil, 1, nil); len(b) != 0 {
		t.Errorf("empty packed ints should be omitted")
	}
}

func TestWalkMalformed(t *testing.T) {
	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	b = protowire.AppendVarint(b, 10)
	err := Walk(b, func(Field) error { return nil })
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("truncated bytes field should be malformed, got %v", err)
	}
	if _, err := UnpackFloat32s([]byte{1, 2, 3}); !errors.Is(err, ErrMalformed) {
		t.Errorf("bad packed float length should be malformed")
	}
}
