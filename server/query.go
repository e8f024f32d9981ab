package server

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gorustyt/gocave/cave"
)

var ErrTooLarge = errors.New("server: requested cave too large")

// caveQuery holds the query parameters that may override the base config.
type caveQuery struct {
	Width            *int     `form:"width"`
	Height           *int     `form:"height"`
	FillPercent      *int     `form:"fill_percent"`
	SmoothIterations *int     `form:"smooth_iterations"`
	SmoothMargin     *int     `form:"smooth_margin"`
	WallThreshold    *int     `form:"wall_threshold"`
	RoomThreshold    *int     `form:"room_threshold"`
	BorderSize       *int     `form:"border_size"`
	SquareSize       *float32 `form:"square_size"`
	WallHeight       *float32 `form:"wall_height"`
	Seed             *string  `form:"seed"`
	UseRandomSeed    *bool    `form:"use_random_seed"`
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (q *caveQuery) apply(base cave.Config) cave.Config {
	cfg := base
	override(&cfg.Width, q.Width)
	override(&cfg.Height, q.Height)
	override(&cfg.FillPercent, q.FillPercent)
	override(&cfg.SmoothIterations, q.SmoothIterations)
	override(&cfg.SmoothMargin, q.SmoothMargin)
	override(&cfg.WallThreshold, q.WallThreshold)
	override(&cfg.RoomThreshold, q.RoomThreshold)
	override(&cfg.BorderSize, q.BorderSize)
	override(&cfg.SquareSize, q.SquareSize)
	override(&cfg.WallHeight, q.WallHeight)
	override(&cfg.Seed, q.Seed)
	override(&cfg.UseRandomSeed, q.UseRandomSeed)
	return cfg
}

// borderedCells returns the tile count of the bordered grid, or false when
// it does not fit in 64 bits. cfg must have passed Validate.
func borderedCells(cfg cave.Config) (uint64, bool) {
	border := 2 * uint64(cfg.BorderSize)
	w, cw := bits.Add64(uint64(cfg.Width), border, 0)
	h, ch := bits.Add64(uint64(cfg.Height), border, 0)
	hi, cells := bits.Mul64(w, h)
	return cells, cw == 0 && ch == 0 && hi == 0
}

// checkLimits bounds the work a single request may ask for.
func checkLimits(cfg cave.Config, maxCells int) error {
	if cfg.SmoothIterations > maxSmoothIterations {
		return fmt.Errorf("%w: %d smoothing passes", ErrTooLarge, cfg.SmoothIterations)
	}
	if maxCells <= 0 {
		return nil
	}
	cells, ok := borderedCells(cfg)
	if !ok || cells > uint64(maxCells) {
		return fmt.Errorf("%w: %dx%d with border %d exceeds %d cells",
			ErrTooLarge, cfg.Width, cfg.Height, cfg.BorderSize, maxCells)
	}
	return nil
}

// checkPixels bounds the PNG raster, which is ppu pixels per tile side.
func checkPixels(cfg cave.Config, ppu, maxPixels int) error {
	cells, ok := borderedCells(cfg)
	hi, pixels := bits.Mul64(cells, uint64(ppu)*uint64(ppu))
	if !ok || hi != 0 || pixels > uint64(maxPixels) {
		return fmt.Errorf("%w: %dx%d at %d pixels per tile exceeds %d pixels",
			ErrTooLarge, cfg.Width, cfg.Height, ppu, maxPixels)
	}
	return nil
}

const maxSmoothIterations = 64
