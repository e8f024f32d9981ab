package common

import "github.com/go-gl/mathgl/mgl32"

type Vec3 = mgl32.Vec3
type Vec2 = mgl32.Vec2

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func AssertTrue(ok bool, msg ...string) {
	if !ok {
		if len(msg) > 0 {
			panic(msg[0])
		}
		panic("assert failed")
	}
}

func SliceTToSlice[T1, T2 IT](v1 []T1) (v2 []T2) {
	v2 = make([]T2, 0, len(v1))
	for _, v := range v1 {
		v2 = append(v2, T2(v))
	}
	return v2
}
