package libraryserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	designhttpmapper "github.com/Apurer/go-gin-design-library/internal/domains/designs/adapters/http/mapper"
	designsports "github.com/Apurer/go-gin-design-library/internal/domains/designs/ports"
)

// DesignAPI wires HTTP transport with the designs bounded context service and workflows.
type DesignAPI struct {
	service   designsports.Service
	workflows designsports.WorkflowOrchestrator
}

// NewDesignAPI creates a DesignAPI. A nil orchestrator deletes through the service directly.
func NewDesignAPI(service designsports.Service, workflows designsports.WorkflowOrchestrator) DesignAPI {
	return DesignAPI{service: service, workflows: workflows}
}

// Get /api/designs
// List the design library. Any query string (the client's cache-busting t) is ignored.
func (api *DesignAPI) ListDesigns(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(designhttpmapper.FromProjectionList(result)))
}

// Get /api/designs/:designId
// Find a design by ID
func (api *DesignAPI) GetDesignById(c *gin.Context) {
	id, valid := parseIDParam(c, "designId")
	if !valid {
		return
	}
	design, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ok(designhttpmapper.FromProjection(design)))
}

// Delete /api/designs/:designId
// Deletes a design. Unknown or already deleted ids answer 404.
func (api *DesignAPI) DeleteDesign(c *gin.Context) {
	id, valid := parseIDParam(c, "designId")
	if !valid {
		return
	}
	if err := api.deleteDesign(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, Ack{Success: true})
}

func (api *DesignAPI) deleteDesign(ctx context.Context, id int64) error {
	if api.workflows != nil {
		return api.workflows.DeleteDesign(ctx, id)
	}
	return api.service.Delete(ctx, id)
}
