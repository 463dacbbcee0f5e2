package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/triple-tgg/sams-sub001/internal/cache"
	"github.com/triple-tgg/sams-sub001/internal/config"
	"github.com/triple-tgg/sams-sub001/internal/db"
	"github.com/triple-tgg/sams-sub001/internal/importer"
	"github.com/triple-tgg/sams-sub001/internal/logger"
	"github.com/triple-tgg/sams-sub001/internal/masterdata"
	"github.com/triple-tgg/sams-sub001/internal/storage"
)

type Handler struct {
	repo      db.Repository
	importSvc *importer.Service
	master    *masterdata.Service
	cache     *cache.Cache
	store     storage.Storage
	cfg       *config.Config
	log       zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	importSvc *importer.Service,
	master *masterdata.Service,
	c *cache.Cache,
	store storage.Storage,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:      repo,
		importSvc: importSvc,
		master:    master,
		cache:     c,
		store:     store,
		cfg:       cfg,
		log:       logger.With("api"),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}
