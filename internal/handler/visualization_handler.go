package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clidwin/visualimprints-go/internal/service"
	"github.com/clidwin/visualimprints-go/pkg/response"
)

// VisualizationHandler handles HTTP requests for the tile grid
type VisualizationHandler struct {
	vizService *service.VisualizationService
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(vizService *service.VisualizationService) *VisualizationHandler {
	return &VisualizationHandler{vizService: vizService}
}

// GetTileGrid handles GET /api/v1/visualization/tiles
func (h *VisualizationHandler) GetTileGrid(c *gin.Context) {
	columns, err := strconv.Atoi(c.DefaultQuery("columns", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid columns parameter")
		return
	}

	tileSize, err := strconv.Atoi(c.DefaultQuery("tileSize", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid tileSize parameter")
		return
	}

	grid, err := h.vizService.BuildTileGrid(columns, tileSize)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, grid)
}
