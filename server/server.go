package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorustyt/gocave/builder"
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common/rw"
	"github.com/gorustyt/gocave/config"
	"github.com/gorustyt/gocave/debug_utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPixelsPerUnit = 4
	maxPixelsPerUnit     = 32
	defaultMaxCells      = 1 << 20
	maxPixels            = 1 << 24
	cacheTTL             = 30 * time.Minute
)

// Server serves generated caves over HTTP. Builds run one at a time;
// concurrent requests for the same configuration share a single build.
type Server struct {
	logger   *zap.Logger
	base     cave.Config
	addr     string
	maxCells int

	cache  *ristretto.Cache[string, *builder.Result]
	flight singleflight.Group
	mu     sync.Mutex
	builds atomic.Int64

	engine *gin.Engine
}

func New(logger *zap.Logger, cfg config.Config) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:   logger,
		base:     cfg.Config,
		addr:     cfg.Server.Addr,
		maxCells: cfg.Server.MaxCells,
	}
	if s.maxCells == 0 {
		s.maxCells = defaultMaxCells
	}
	if n := cfg.Server.CacheEntries; n > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, *builder.Result]{
			NumCounters:        n * 10,
			MaxCost:            n,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), s.accessLog())
	e.GET("/healthz", s.healthz)
	e.GET("/cave", s.caveJSON)
	e.GET("/cave.pb", s.caveProto)
	e.GET("/cave.bin", s.caveBin)
	e.GET("/cave.obj", s.caveObj)
	e.GET("/cave.png", s.cavePNG)
	return e
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cacheKey spells out every field, so distinct configs never share a key.
func cacheKey(cfg cave.Config) string {
	return fmt.Sprintf("%+v", cfg)
}

// resolve applies the query to the base config and checks it, writing the
// error response itself when the config is rejected.
func (s *Server) resolve(c *gin.Context) (cave.Config, bool) {
	var q caveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return cave.Config{}, false
	}
	cfg := q.apply(s.base)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return cave.Config{}, false
	}
	if err := checkLimits(cfg, s.maxCells); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return cave.Config{}, false
	}
	return cfg, true
}

// result resolves the request config and returns a built cave, writing the
// error response itself when it cannot.
func (s *Server) result(c *gin.Context) (*builder.Result, bool) {
	cfg, ok := s.resolve(c)
	if !ok {
		return nil, false
	}
	return s.resultFor(c, cfg)
}

func (s *Server) resultFor(c *gin.Context, cfg cave.Config) (*builder.Result, bool) {
	res, err := s.build(cfg)
	if err != nil {
		s.logger.Error("build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return res, true
}

func (s *Server) build(cfg cave.Config) (*builder.Result, error) {
	if cfg.UseRandomSeed {
		return s.buildLocked(cfg)
	}
	key := cacheKey(cfg)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			return res, nil
		}
	}
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		res, err := s.buildLocked(cfg)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetWithTTL(key, res, 1, cacheTTL)
			s.cache.Wait()
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*builder.Result), nil
}

func (s *Server) buildLocked(cfg cave.Config) (*builder.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds.Add(1)
	return builder.New(cfg, builder.WithLogger(s.logger)).Build()
}

func (s *Server) caveJSON(c *gin.Context) {
	res, ok := s.result(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newCaveResponse(res))
}

func (s *Server) caveProto(c *gin.Context) {
	res, ok := s.result(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/x-protobuf", res.Mesh.ToProto())
}

func (s *Server) caveBin(c *gin.Context) {
	res, ok := s.result(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", res.Mesh.ToBin())
}

func (s *Server) caveObj(c *gin.Context) {
	res, ok := s.result(c)
	if !ok {
		return
	}
	w := rw.NewMeshDataBinWriter()
	debug_utils.DuDumpCaveMeshToObj(res.Mesh, res.Walls, w)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", w.GetWriteBytes())
}

func (s *Server) cavePNG(c *gin.Context) {
	ppu := defaultPixelsPerUnit
	if v := c.Query("ppu"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxPixelsPerUnit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ppu must be within [1, 32]"})
			return
		}
		ppu = n
	}
	cfg, ok := s.resolve(c)
	if !ok {
		return
	}
	if err := checkPixels(cfg, ppu, maxPixels); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, ok := s.resultFor(c, cfg)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := debug_utils.DuWriteCavePNG(&buf, res.Scene(), float32(ppu)/res.Config.SquareSize); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
