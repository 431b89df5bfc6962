package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JLTC3111/contract-management-app-sub001/config"
	"github.com/JLTC3111/contract-management-app-sub001/middleware"
	"github.com/JLTC3111/contract-management-app-sub001/pkg/logger"
	"github.com/JLTC3111/contract-management-app-sub001/service"
)

// LifecycleHandler exposes the batch entry points the scheduler calls.
// Both are guarded by a shared-secret bearer token, not user JWTs.
type LifecycleHandler struct {
	job      *service.LifecycleJob
	migrator *service.Migrator
	config   *config.LifecycleConfig
}

func NewLifecycleHandler(job *service.LifecycleJob, migrator *service.Migrator, cfg *config.LifecycleConfig) *LifecycleHandler {
	return &LifecycleHandler{
		job:      job,
		migrator: migrator,
		config:   cfg,
	}
}

// authorize checks the shared trigger secret. A missing server-side token
// is a configuration error (500), a bad caller token is 401. Nothing is
// processed in either case.
func (h *LifecycleHandler) authorize(c *gin.Context) bool {
	if h.config.TriggerToken == "" {
		logger.Error(c.Request.Context(), "lifecycle trigger token is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Lifecycle trigger is not configured",
			"code":  "configuration_error",
		})
		return false
	}

	token := middleware.BearerToken(c)
	if token == "" || token != h.config.TriggerToken {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or missing trigger token",
			"code":  "authorization_error",
		})
		return false
	}

	return true
}

// Run triggers a lifecycle batch run. The classification date defaults to
// the current day and can be overridden with ?today=YYYY-MM-DD, which keeps
// the endpoint replayable for backfills.
func (h *LifecycleHandler) Run(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	today := time.Now()
	if raw := c.Query("today"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid today parameter, want YYYY-MM-DD"})
			return
		}
		today = parsed
	}

	summary, err := h.job.Run(c.Request.Context(), today)
	if err != nil {
		logger.Error(c.Request.Context(), "lifecycle run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Lifecycle run failed",
			"code":  "persistence_failure",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Migrate backfills missing phases across all contracts.
func (h *LifecycleHandler) Migrate(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	summary, err := h.migrator.MigrateAll(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "phase migration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Phase migration failed",
			"code":  "persistence_failure",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
