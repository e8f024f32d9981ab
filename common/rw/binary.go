package rw

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ReaderWriter is a little-endian byte codec. Reads record the first
// short read in Err and return zero values afterwards.
type ReaderWriter struct {
	order   binary.ByteOrder
	dataBuf []byte
	rw      bytes.Buffer
	err     error
}

func NewMeshDataBinWriter() *ReaderWriter {
	return &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
}

func NewMeshDataBinReader(data []byte) *ReaderWriter {
	d := &ReaderWriter{order: binary.LittleEndian, dataBuf: make([]byte, 8)}
	d.rw.Write(data)
	return d
}

func (w *ReaderWriter) Err() error {
	return w.err
}

func (w *ReaderWriter) read(n int) []byte {
	if w.err != nil {
		return nil
	}
	if w.rw.Len() < n {
		w.err = fmt.Errorf("rw: short read: need %d bytes, have %d", n, w.rw.Len())
		return nil
	}
	_, _ = w.rw.Read(w.dataBuf[:n])
	return w.dataBuf[:n]
}

func (w *ReaderWriter) ReadUInt32() uint32 {
	b := w.read(4)
	if b == nil {
		return 0
	}
	return w.order.Uint32(b)
}

func (w *ReaderWriter) ReadInt32() int32 {
	return int32(w.ReadUInt32())
}

func (w *ReaderWriter) ReadInt32s(value []int32) {
	for i := range value {
		value[i] = w.ReadInt32()
	}
}

func (w *ReaderWriter) ReadFloat32() float32 {
	return math.Float32frombits(w.ReadUInt32())
}

func (w *ReaderWriter) ReadFloat32s(value []float32) {
	for i := range value {
		value[i] = w.ReadFloat32()
	}
}

func (w *ReaderWriter) WriteUInt32(v uint32) {
	w.order.PutUint32(w.dataBuf, v)
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) WriteInt32(v interface{}) {
	switch value := v.(type) {
	case int32:
		w.WriteUInt32(uint32(value))
	case int:
		w.WriteUInt32(uint32(int32(value)))
	case uint32:
		w.WriteUInt32(value)
	default:
		panic("not impl")
	}
}

func (w *ReaderWriter) WriteInt32s(v interface{}) {
	switch value := v.(type) {
	case []int32:
		for _, tmp := range value {
			w.WriteInt32(tmp)
		}
	case []int:
		for _, tmp := range value {
			w.WriteInt32(tmp)
		}
	default:
		panic("not impl")
	}
}

func (w *ReaderWriter) WriteFloat32(v float32) {
	w.WriteUInt32(math.Float32bits(v))
}

func (w *ReaderWriter) WriteFloat32s(v interface{}) {
	switch value := v.(type) {
	case []float32:
		for _, tmp := range value {
			w.WriteFloat32(tmp)
		}
	case []float64:
		for _, tmp := range value {
			w.WriteFloat32(float32(tmp))
		}
	default:
		panic("not impl")
	}
}

func (w *ReaderWriter) WriteString(s string) {
	w.rw.WriteString(s)
}

func (w *ReaderWriter) GetWriteBytes() (res []byte) {
	res = w.rw.Bytes()
	return res
}

func (w *ReaderWriter) Size() int {
	return w.rw.Len()
}
