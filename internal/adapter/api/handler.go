package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/repository"
)

// Handler serves the dashboard REST API: synchronous evaluation plus read
// access to stored locations, records, alerts, and advisories.
type Handler struct {
	repo   repository.RecordRepository
	engine *domain.Engine
	logger *slog.Logger
}

func NewHandler(repo repository.RecordRepository, engine *domain.Engine, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// NewRouter builds a gin engine with recovery, CORS, and rate limiting, and
// registers all API routes on it.
func NewRouter(h *Handler, rps int) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // must stay false with wildcard origins
	}))
	router.Use(RateLimitMiddleware(rps))

	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.POST("/evaluate", h.evaluate)
	v1.GET("/locations", h.getLocations)
	v1.GET("/locations/:location/records", h.getRecords)
	v1.GET("/locations/:location/alerts", h.getAlerts)
	v1.GET("/locations/:location/advisories", h.getAdvisories)
}

// evaluateRequest carries a record plus optional history for a stateless
// evaluation that never touches the store.
type evaluateRequest struct {
	Current domain.WaterRecord   `json:"current"`
	History []domain.WaterRecord `json:"history"`
}

func (h *Handler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Current.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current.location is required"})
		return
	}

	alerts := h.engine.GenerateAlerts(req.Current, req.History)
	if alerts == nil {
		alerts = []domain.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"location": req.Current.Location,
		"year":     req.Current.Year,
		"alerts":   alerts,
	})
}

func (h *Handler) getLocations(c *gin.Context) {
	locations, err := h.repo.Locations(c.Request.Context())
	if err != nil {
		h.logger.Error("list locations failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations"})
		return
	}
	if locations == nil {
		locations = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *Handler) getRecords(c *gin.Context) {
	location := c.Param("location")

	records, err := h.repo.History(c.Request.Context(), location)
	if err != nil {
		h.logger.Error("load history failed", "location", location, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location, "records": records})
}

func (h *Handler) getAlerts(c *gin.Context) {
	location := c.Param("location")
	ctx := c.Request.Context()

	latest, err := h.repo.Latest(ctx, location)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		h.logger.Error("load latest record failed", "location", location, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	history, err := h.repo.History(ctx, location)
	if err != nil {
		h.logger.Error("load history failed", "location", location, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	alerts := h.engine.GenerateAlerts(latest, history)
	if alerts == nil {
		alerts = []domain.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"year":     latest.Year,
		"alerts":   alerts,
	})
}

func (h *Handler) getAdvisories(c *gin.Context) {
	location := c.Param("location")

	latest, err := h.repo.Latest(c.Request.Context(), location)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		h.logger.Error("load latest record failed", "location", location, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch advisories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":   location,
		"advisories": domain.GenerateAdvisories(latest),
	})
}
