// Package api serves libav error lookups and cached stream probes over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zijiren233/gencontainer/rwmap"

	"github.com/GreatValueCreamSoda/hdrplay/averror"
)

type Server struct {
	prober Prober
	cache  rwmap.RWMap[string, *ProbeResult]
	engine *gin.Engine
}

// New builds the router. dev enables gin's debug mode and request logging.
func New(prober Prober, dev bool) *Server {
	if dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{prober: prober, engine: gin.New()}
	s.engine.Use(gin.Recovery())
	if dev {
		s.engine.Use(gin.Logger())
	}
	allowAllOrigins(s.engine)

	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/v1")
	v1.GET("/errors", s.listErrors)
	v1.GET("/errors/:code", s.lookupError)
	v1.GET("/probe", s.probe)
	v1.DELETE("/probe", s.evict)

	return s
}

func allowAllOrigins(r *gin.Engine) {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"*"}
	config.AllowMethods = []string{"GET", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))
}

func (s *Server) Handler() http.Handler { return s.engine.Handler() }

// ListenAndServe serves until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(),
		ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("api: listening on http://%s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok",
		"cached_probes": s.cache.Len()})
}

type errorEntry struct {
	Code    int32  `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func newErrorEntry(code averror.Code) errorEntry {
	return errorEntry{int32(code), code.Name(), code.Error()}
}

func (s *Server) listErrors(c *gin.Context) {
	codes := averror.All()
	entries := make([]errorEntry, 0, len(codes)+1)
	for _, code := range codes {
		entries = append(entries, newErrorEntry(code))
	}
	entries = append(entries, newErrorEntry(averror.EAGAIN()))
	c.JSON(http.StatusOK, entries)
}

func (s *Server) lookupError(c *gin.Context) {
	code, err := averror.Parse(c.Param("code"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, newErrorEntry(code))
}

func (s *Server) probe(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "path query parameter is required",
		})
		return
	}

	if res, ok := s.cache.Load(path); ok {
		c.Header("X-Cache", "hit")
		c.JSON(http.StatusOK, res)
		return
	}

	res, err := s.prober.Probe(c.Request.Context(), path)
	if err != nil {
		c.AbortWithStatusJSON(probeStatus(err), gin.H{
			"error": err.Error(),
			"code":  codeOf(err),
		})
		return
	}

	// a concurrent request may have won the race, serve what is cached
	res, _ = s.cache.LoadOrStore(path, res)
	c.Header("X-Cache", "miss")
	c.JSON(http.StatusOK, res)
}

func (s *Server) evict(c *gin.Context) {
	path := c.Query("path")
	if _, ok := s.cache.LoadAndDelete(path); !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "path is not cached",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

func codeOf(err error) string {
	var code averror.Code
	if errors.As(err, &code) {
		return code.Name()
	}
	return ""
}

func probeStatus(err error) int {
	switch {
	case errors.Is(err, syscall.ENOENT):
		return http.StatusNotFound
	case errors.Is(err, averror.ErrInvalidData),
		errors.Is(err, averror.ErrPatchWelcome):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
