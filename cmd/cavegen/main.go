package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorustyt/gocave/builder"
	"github.com/gorustyt/gocave/config"
	"github.com/gorustyt/gocave/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cavegen:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("cavegen", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	configFile := fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	envFile := fs.String("env", ".env", "dotenv file loaded before the environment is read")
	outDir := fs.StringP("out", "o", ".", "output directory")
	name := fs.StringP("name", "n", "cave", "output file name prefix")
	formats := fs.StringSlice("formats", []string{"obj", "png"}, "outputs to write: "+strings.Join(allFormats, ", "))
	ppu := fs.Float32("ppu", 4, "png pixels per tile")
	dump := fs.Bool("dump", false, "print rooms and passages to stdout")
	times := fs.Bool("times", false, "log per stage build times")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadEnv(*envFile); err != nil {
		return err
	}
	cfg, err := config.Load(*configFile, fs)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := []builder.Option{builder.WithLogger(log)}
	if *times {
		opts = append(opts, builder.WithBuildTimes())
	}
	res, err := builder.New(cfg.Config, opts...).Build()
	if err != nil {
		return err
	}

	written, err := writeOutputs(res, *outDir, *name, *formats, *ppu)
	if err != nil {
		return err
	}
	for _, path := range written {
		log.Info("wrote", zap.String("path", path))
	}

	if *dump {
		dumpConfig := spew.ConfigState{Indent: "  ", MaxDepth: 2, DisablePointerAddresses: true}
		dumpConfig.Fdump(os.Stdout, summarizeRooms(res.Rooms), res.Passages)
	}
	return nil
}
