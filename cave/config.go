package cave

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSize       = errors.New("cave: width and height must be non-negative")
	ErrInvalidFill       = errors.New("cave: fill percent must be within [0, 100]")
	ErrInvalidIterations = errors.New("cave: smoothing iterations must be non-negative")
	ErrInvalidThreshold  = errors.New("cave: region threshold out of range")
	ErrInvalidBorder     = errors.New("cave: border size must be non-negative")
	ErrInvalidSquareSize = errors.New("cave: square size must be positive and finite")
	ErrInvalidWallHeight = errors.New("cave: wall height must be finite")
)

// Config describes one generation run.
type Config struct {
	/// Grid width in tiles. [Limit: >= 0]
	Width int `mapstructure:"width" json:"width"`

	/// Grid height in tiles. [Limit: >= 0]
	Height int `mapstructure:"height" json:"height"`

	/// Chance of an interior tile starting as wall. [Limits: 0 <= value <= 100]
	FillPercent int `mapstructure:"fill_percent" json:"fill_percent"`

	/// Number of cellular automaton passes. [Limit: >= 0]
	SmoothIterations int `mapstructure:"smooth_iterations" json:"smooth_iterations"`

	/// Width of the wall ring forced after every smoothing pass. [Limit: >= 0]
	SmoothMargin int `mapstructure:"smooth_margin" json:"smooth_margin"`

	/// Wall regions smaller than this become floor. [Limit: 0 or < width*height]
	WallThreshold int `mapstructure:"wall_threshold" json:"wall_threshold"`

	/// Floor regions smaller than this become wall. [Limit: 0 or < width*height]
	RoomThreshold int `mapstructure:"room_threshold" json:"room_threshold"`

	/// Wall padding added around the cleaned grid before meshing. [Limit: >= 0]
	BorderSize int `mapstructure:"border_size" json:"border_size"`

	/// World size of one tile. [Limit: > 0] [Units: wu]
	SquareSize float32 `mapstructure:"square_size" json:"square_size"`

	/// Depth of extruded walls. 0 disables extrusion. [Units: wu]
	WallHeight float32 `mapstructure:"wall_height" json:"wall_height"`

	Seed          string `mapstructure:"seed" json:"seed"`
	UseRandomSeed bool   `mapstructure:"use_random_seed" json:"use_random_seed"`
}

func DefaultConfig() Config {
	return Config{
		Width:            128,
		Height:           72,
		FillPercent:      48,
		SmoothIterations: 5,
		SmoothMargin:     1,
		WallThreshold:    50,
		RoomThreshold:    50,
		BorderSize:       1,
		SquareSize:       1,
		WallHeight:       5,
		Seed:             "cave",
	}
}

func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.FillPercent < 0 || c.FillPercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidFill, c.FillPercent)
	}
	if c.SmoothIterations < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, c.SmoothIterations)
	}
	if c.SmoothMargin < 0 || c.BorderSize < 0 {
		return fmt.Errorf("%w: margin %d, border %d", ErrInvalidBorder, c.SmoothMargin, c.BorderSize)
	}
	cells := c.Width * c.Height
	if err := checkThreshold("wall", c.WallThreshold, cells); err != nil {
		return err
	}
	if err := checkThreshold("room", c.RoomThreshold, cells); err != nil {
		return err
	}
	if !(c.SquareSize > 0) || math.IsInf(float64(c.SquareSize), 1) {
		return fmt.Errorf("%w: %v", ErrInvalidSquareSize, c.SquareSize)
	}
	if math.IsNaN(float64(c.WallHeight)) || math.IsInf(float64(c.WallHeight), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWallHeight, c.WallHeight)
	}
	return nil
}

// A zero threshold disables filtering and is always accepted.
func checkThreshold(name string, threshold, cells int) error {
	if threshold < 0 || (threshold > 0 && threshold >= cells) {
		return fmt.Errorf("%w: %s threshold %d for %d cells", ErrInvalidThreshold, name, threshold, cells)
	}
	return nil
}
