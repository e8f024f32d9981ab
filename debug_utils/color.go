package debug_utils

import "image/color"

type Colorb [4]uint8

func (c Colorb) R() uint8 {
	return c[0]
}

func (c Colorb) G() uint8 {
	return c[1]
}

func (c Colorb) B() uint8 {
	return c[2]
}

func (c Colorb) A() uint8 {
	return c[3]
}

func (c Colorb) Int() uint32 {
	return uint32(c.R()) | (uint32(c.G()) << 8) | (uint32(c.B()) << 16) | (uint32(c.A()) << 24)
}

func (c *Colorb) FromInt(col uint32) {
	c[0] = uint8(col & 0xff)
	c[1] = uint8((col >> 8) & 0xff)
	c[2] = uint8((col >> 16) & 0xff)
	c[3] = uint8((col >> 24) & 0xff)
}

// NRGBA converts to a non-premultiplied image color.
func (c Colorb) NRGBA() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func FromColor(c color.Color) Colorb {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Colorb{n.R, n.G, n.B, n.A}
}

func DuRGBA[T int | int32 | uint8](r, g, b, a T) Colorb {
	return Colorb{uint8(r), uint8(g), uint8(b), uint8(a)}
}

func Bit(a, b int) int {
	return (a & (1 << b)) >> b
}

// DuIntToCol spreads small integers such as room ids over distinct colors.
func DuIntToCol(i, a int) Colorb {
	r := Bit(i, 1) + Bit(i, 3)*2 + 1
	g := Bit(i, 2) + Bit(i, 4)*2 + 1
	b := Bit(i, 0) + Bit(i, 5)*2 + 1
	return DuRGBA(r*63, g*63, b*63, a)
}

func duMultCol(col Colorb, d uint8) Colorb {
	r := uint32(col[0])
	g := uint32(col[1])
	b := uint32(col[2])
	a := col[3]
	return DuRGBA(uint8((r*uint32(d))>>8), uint8((g*uint32(d))>>8), uint8((b*uint32(d))>>8), a)
}

func DuDarkenCol(col Colorb) Colorb {
	return duMultCol(col, 160)
}

func DuLerpCol(ca, cb Colorb, u uint8) Colorb {
	ka := uint32(255 - u)
	kb := uint32(u)
	lerp := func(a, b uint8) uint8 {
		return uint8((uint32(a)*ka + uint32(b)*kb) / 255)
	}
	return Colorb{lerp(ca[0], cb[0]), lerp(ca[1], cb[1]), lerp(ca[2], cb[2]), lerp(ca[3], cb[3])}
}

func DuTransCol(c Colorb, a uint8) Colorb {
	return Colorb{c[0], c[1], c[2], a}
}
