package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/internal/repository"
)

const (
	adminStatsCacheKey = "dashboard:admin_stats"
	adminStatsCacheTTL = 30 * time.Second
)

type DashboardHandler struct {
	users    *repository.UserRepository
	projects *repository.ProjectRepository
	requests *repository.ServiceRequestRepository
	cache    *redis.Client
	logger   *zap.Logger
}

func NewDashboardHandler(
	users *repository.UserRepository,
	projects *repository.ProjectRepository,
	requests *repository.ServiceRequestRepository,
	cache *redis.Client,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		users:    users,
		projects: projects,
		requests: requests,
		cache:    cache,
		logger:   logger,
	}
}

type adminStats struct {
	TotalClients    int64 `json:"totalClients"`
	ActiveProjects  int64 `json:"activeProjects"`
	TotalProjects   int64 `json:"totalProjects"`
	PendingRequests int64 `json:"pendingRequests"`
}

// AdminStats handles GET /api/dashboard/admin/stats. Counts are served from
// a short-lived redis cache to keep the dashboard cheap to refresh.
func (h *DashboardHandler) AdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, adminStatsCacheKey).Bytes(); err == nil {
			var stats adminStats
			if json.Unmarshal(cached, &stats) == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	totalClients, err := h.users.CountByRole(ctx, model.RoleClient)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	activeProjects, err := h.projects.CountByStatus(ctx, model.StatusActive)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	totalProjects, err := h.projects.Count(ctx)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	pendingRequests, err := h.requests.CountByStatus(ctx, model.RequestPending)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	stats := adminStats{
		TotalClients:    totalClients,
		ActiveProjects:  activeProjects,
		TotalProjects:   totalProjects,
		PendingRequests: pendingRequests,
	}

	if h.cache != nil {
		if body, err := json.Marshal(stats); err == nil {
			if err := h.cache.Set(ctx, adminStatsCacheKey, body, adminStatsCacheTTL).Err(); err != nil {
				h.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}
