package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pageObject/internal/config"
	"pageObject/internal/database"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Runs: чтение журнала прогонов.
type Runs interface {
	GetByID(ctx context.Context, id uint) (*database.Run, error)
	List(ctx context.Context, limit, offset int) ([]database.Run, error)
}

type Server struct {
	cfg  *config.Cfg
	log  *zap.Logger
	repo Runs
}

func New(cfg *config.Cfg, log *zap.Logger, repo Runs) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:  cfg,
		log:  log.Named("server"),
		repo: repo,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		s.log.Debug("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/runs", s.listRuns)
	r.GET("/api/runs/:id", s.getRun)
	return r
}

func (s *Server) listRuns(c *gin.Context) {
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad limit"})
			return
		}
		limit = min(n, maxLimit)
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	runs, err := s.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.log.Error("Список прогонов", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	run, err := s.repo.GetByID(c.Request.Context(), uint(id64))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.log.Error("Чтение прогона", zap.Uint64("id", id64), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// Run слушает до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.App.Host, s.cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}
