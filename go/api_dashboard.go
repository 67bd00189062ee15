package libraryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardhttpmapper "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/adapters/http/mapper"
	dashboardports "github.com/Apurer/go-gin-design-library/internal/domains/dashboard/ports"
)

// DashboardAPI exposes the aggregate stats.
type DashboardAPI struct {
	service dashboardports.Service
}

// NewDashboardAPI creates a DashboardAPI backed by the provided service.
func NewDashboardAPI(service dashboardports.Service) DashboardAPI {
	return DashboardAPI{service: service}
}

// Get /api/stats
// Total meetings and designs, counted fresh on every call
func (api *DashboardAPI) GetStats(c *gin.Context) {
	stats, err := api.service.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(dashboardhttpmapper.FromDomain(stats)))
}
