package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	authusecase "taskboard-backend/internal/auth/usecase"
	boarddto "taskboard-backend/internal/board/dto"
	boardusecase "taskboard-backend/internal/board/usecase"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
)

// Handler owns the HTTP engine and its route wiring.
type Handler struct {
	engine *gin.Engine
}

// NewHandler assembles the gin engine, registers the board's enum
// validators and mounts all routes.
func NewHandler(cfg *config.Config, authUc authusecase.AuthUsecase, groupUc authusecase.GroupUsecase, boardSvc *boardusecase.Service, db *database.Manager, log *logrus.Logger) (*Handler, error) {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := boarddto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	SetupRoutes(engine, authUc, groupUc, boardSvc, db)

	return &Handler{engine: engine}, nil
}

// Start blocks serving HTTP on addr.
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}

// requestLogger logs one structured line per request.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request")
		}
	}
}
