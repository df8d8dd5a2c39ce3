package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clidwin/visualimprints-go/internal/models"
	"github.com/clidwin/visualimprints-go/internal/repository"
	"github.com/clidwin/visualimprints-go/internal/service"
	"github.com/clidwin/visualimprints-go/pkg/response"
)

// PinHandler handles HTTP requests for geospatial pins
type PinHandler struct {
	pinService *service.PinService
}

// NewPinHandler creates a new pin handler
func NewPinHandler(pinService *service.PinService) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// CreatePin handles POST /api/v1/pins
func (h *PinHandler) CreatePin(c *gin.Context) {
	var req models.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid pin payload")
		return
	}

	pin, err := h.pinService.CreatePin(req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, pin)
}

// GetAllPins handles GET /api/v1/pins
func (h *PinHandler) GetAllPins(c *gin.Context) {
	pins, err := h.pinService.GetAllPins()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  pins,
		"count": len(pins),
	})
}

// GetMostRecentPin handles GET /api/v1/pins/recent
func (h *PinHandler) GetMostRecentPin(c *gin.Context) {
	pin, err := h.pinService.GetMostRecentPin()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if pin == nil {
		response.NotFound(c, "No pins recorded yet")
		return
	}

	response.Success(c, pin)
}

// GetRecordedDates handles GET /api/v1/pins/dates
func (h *PinHandler) GetRecordedDates(c *gin.Context) {
	dates, err := h.pinService.GetRecordedDates()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  dates,
		"count": len(dates),
	})
}

// GetPinsByDates handles GET /api/v1/pins/by-dates?dates=...&dates=...
func (h *PinHandler) GetPinsByDates(c *gin.Context) {
	dates := c.QueryArray("dates")

	pins, err := h.pinService.GetPinsFromDates(dates)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  pins,
		"count": len(pins),
	})
}

// GetLast24Hours handles GET /api/v1/pins/last24h
func (h *PinHandler) GetLast24Hours(c *gin.Context) {
	pins, err := h.pinService.GetLast24Hours()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  pins,
		"count": len(pins),
	})
}

// GetPinByID handles GET /api/v1/pins/:id
func (h *PinHandler) GetPinByID(c *gin.Context) {
	id, err := parsePinID(c)
	if err != nil {
		response.BadRequest(c, "Invalid pin ID")
		return
	}

	pin, err := h.pinService.GetPinByID(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if pin == nil {
		response.NotFound(c, "Pin not found")
		return
	}

	response.Success(c, pin)
}

// UpdatePin handles PUT /api/v1/pins/:id
func (h *PinHandler) UpdatePin(c *gin.Context) {
	id, err := parsePinID(c)
	if err != nil {
		response.BadRequest(c, "Invalid pin ID")
		return
	}

	var req models.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid pin payload")
		return
	}

	pin, err := h.pinService.UpdatePin(id, req)
	if errors.Is(err, repository.ErrPinNotFound) {
		response.NotFound(c, "Pin not found")
		return
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, pin)
}

// DeletePin handles DELETE /api/v1/pins/:id
func (h *PinHandler) DeletePin(c *gin.Context) {
	id, err := parsePinID(c)
	if err != nil {
		response.BadRequest(c, "Invalid pin ID")
		return
	}

	err = h.pinService.DeletePin(id)
	if errors.Is(err, repository.ErrPinNotFound) {
		response.NotFound(c, "Pin not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

func parsePinID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
