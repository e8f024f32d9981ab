package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gorustyt/gocave/config"
	"github.com/gorustyt/gocave/logger"
	"github.com/gorustyt/gocave/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fs := pflag.NewFlagSet("caveserver", pflag.ExitOnError)
	config.RegisterFlags(fs)
	fs.String("addr", config.Default().Server.Addr, "listen address")
	configFile := fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	envFile := fs.String("env", ".env", "dotenv file loaded before the environment is read")
	fs.Parse(os.Args[1:])

	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configFile, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(log, *cfg)
	if err != nil {
		log.Fatal("create server", zap.Error(err))
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
