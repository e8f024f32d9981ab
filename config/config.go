package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gorustyt/gocave/cave"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CAVE"

type LogConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	File       string `mapstructure:"file" json:"file"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age"` // days
	Compress   bool   `mapstructure:"compress" json:"compress"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr" json:"addr"`
	CacheEntries int64  `mapstructure:"cache_entries" json:"cache_entries"`
	MaxCells     int    `mapstructure:"max_cells" json:"max_cells"`
}

// Config is the generation config plus the settings of the programs
// around it. Generation keys live at the top level.
type Config struct {
	cave.Config `mapstructure:",squash"`
	Log         LogConfig    `mapstructure:"log" json:"log"`
	Server      ServerConfig `mapstructure:"server" json:"server"`
}

func Default() Config {
	return Config{
		Config: cave.DefaultConfig(),
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			CacheEntries: 64,
			MaxCells:     1 << 20,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("fill_percent", d.FillPercent)
	v.SetDefault("smooth_iterations", d.SmoothIterations)
	v.SetDefault("smooth_margin", d.SmoothMargin)
	v.SetDefault("wall_threshold", d.WallThreshold)
	v.SetDefault("room_threshold", d.RoomThreshold)
	v.SetDefault("border_size", d.BorderSize)
	v.SetDefault("square_size", d.SquareSize)
	v.SetDefault("wall_height", d.WallHeight)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("use_random_seed", d.UseRandomSeed)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cache_entries", d.Server.CacheEntries)
	v.SetDefault("server.max_cells", d.Server.MaxCells)
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"width":             "width",
	"height":            "height",
	"fill-percent":      "fill_percent",
	"smooth-iterations": "smooth_iterations",
	"smooth-margin":     "smooth_margin",
	"wall-threshold":    "wall_threshold",
	"room-threshold":    "room_threshold",
	"border-size":       "border_size",
	"square-size":       "square_size",
	"wall-height":       "wall_height",
	"seed":              "seed",
	"random-seed":       "use_random_seed",
	"log-level":         "log.level",
	"log-file":          "log.file",
	"addr":              "server.addr",
}

// RegisterFlags adds one flag per generation key plus the log flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("width", d.Width, "grid width in tiles")
	fs.Int("height", d.Height, "grid height in tiles")
	fs.Int("fill-percent", d.FillPercent, "initial wall chance [0,100]")
	fs.Int("smooth-iterations", d.SmoothIterations, "cellular automaton passes")
	fs.Int("smooth-margin", d.SmoothMargin, "wall ring forced after each pass")
	fs.Int("wall-threshold", d.WallThreshold, "wall regions smaller than this become floor")
	fs.Int("room-threshold", d.RoomThreshold, "floor regions smaller than this become wall")
	fs.Int("border-size", d.BorderSize, "wall padding added before meshing")
	fs.Float32("square-size", d.SquareSize, "world size of one tile")
	fs.Float32("wall-height", d.WallHeight, "extruded wall depth, 0 disables walls")
	fs.String("seed", d.Seed, "seed string")
	fs.Bool("random-seed", d.UseRandomSeed, "seed from the current time")
	fs.String("log-level", d.Log.Level, "debug, info, warn or error")
	fs.String("log-file", d.Log.File, "rotate logs into this file")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

// LoadEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load resolves configuration from, lowest precedence first: defaults,
// the optional config file at path, CAVE_* environment variables and
// flags in fs that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
