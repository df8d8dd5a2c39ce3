package service

import (
	"fmt"

	"github.com/clidwin/visualimprints-go/internal/database"
	"github.com/clidwin/visualimprints-go/internal/models"
	"github.com/clidwin/visualimprints-go/internal/repository"
	"github.com/clidwin/visualimprints-go/internal/spatial"
)

const (
	defaultGridColumns = 7 // one week per grid row
	defaultTileSize    = 96
)

// VisualizationService aggregates stored pins into renderable tiles for the
// grid frontend.
type VisualizationService struct {
	pinRepo *repository.PinRepository
}

// NewVisualizationService creates a new visualization service
func NewVisualizationService(pinRepo *repository.PinRepository) *VisualizationService {
	return &VisualizationService{pinRepo: pinRepo}
}

// BuildTileGrid lays out one tile per recorded date, newest date first,
// row-major in a fixed-column grid. Each tile stacks that date's pins as
// slices in descending arrival order; every slice carries the great-circle
// displacement from the chronologically previous pin of the same day.
func (s *VisualizationService) BuildTileGrid(columns, tileSize int) (*models.TileGrid, error) {
	if columns < 1 {
		columns = defaultGridColumns
	}
	if tileSize < 1 {
		tileSize = defaultTileSize
	}

	dates, err := s.pinRepo.GetAllDates()
	if err != nil {
		return nil, fmt.Errorf("failed to get recorded dates: %w", err)
	}

	pins, err := s.pinRepo.GetAllFromDates(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to get pins for tile grid: %w", err)
	}

	byDate := groupByDate(pins)

	grid := &models.TileGrid{
		Columns:  columns,
		TileSize: tileSize,
		Tiles:    make([]*models.Tile, 0, len(dates)),
	}

	for i, date := range dates {
		startX := (i % columns) * tileSize
		startY := (i / columns) * tileSize
		tile := models.NewTileAt(startX, startY, tileSize, tileSize, nil)

		// Pins arrive newest-first; the chronologically previous pin of the
		// day sits one position later in the list.
		dayPins := byDate[date]
		for j, pin := range dayPins {
			var displacement float64
			if j+1 < len(dayPins) {
				prev := dayPins[j+1]
				displacement = spatial.HaversineDistance(
					prev.Latitude, prev.Longitude,
					pin.Latitude, pin.Longitude,
				)
			}

			tile.AddSlice(models.Slice{
				PinID:              pin.ID,
				ArrivalTime:        pin.ArrivalTime,
				DurationSeconds:    pin.DurationSeconds,
				Address:            pin.Address,
				DisplacementMeters: displacement,
			})
		}

		grid.Tiles = append(grid.Tiles, tile)
	}

	return grid, nil
}

// groupByDate buckets pins by their arrival date string, preserving the
// incoming order within each bucket.
func groupByDate(pins []models.GeospatialPin) map[string][]models.GeospatialPin {
	byDate := make(map[string][]models.GeospatialPin)
	for _, pin := range pins {
		date := pin.ArrivalTime.Format(database.DateFormat)
		byDate[date] = append(byDate[date], pin)
	}
	return byDate
}
