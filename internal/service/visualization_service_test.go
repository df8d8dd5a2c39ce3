package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clidwin/visualimprints-go/internal/database"
	"github.com/clidwin/visualimprints-go/internal/models"
	"github.com/clidwin/visualimprints-go/internal/repository"
)

func setupVizService(t *testing.T) (*VisualizationService, *repository.PinRepository) {
	t.Helper()

	store, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "pins.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db, err := store.DB()
	require.NoError(t, err)
	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	repo := repository.NewPinRepository(store)
	return NewVisualizationService(repo), repo
}

func addPin(t *testing.T, repo *repository.PinRepository, lat, long float64, arrival time.Time) *models.GeospatialPin {
	t.Helper()
	pin := models.NewGeospatialPin(lat, long, arrival, 300)
	require.NoError(t, repo.Add(pin))
	return pin
}

func TestBuildTileGridLayout(t *testing.T) {
	svc, repo := setupVizService(t)

	day := func(d, hour int) time.Time {
		return time.Date(2025, time.August, d, hour, 0, 0, 0, time.Local)
	}

	// Three recorded dates; the newest has two pins.
	morning := addPin(t, repo, 47.60000000, -122.33000000, day(26, 9))
	evening := addPin(t, repo, 47.61000000, -122.34000000, day(26, 18))
	addPin(t, repo, 40, -70, day(25, 12))
	addPin(t, repo, 41, -71, day(23, 12))

	grid, err := svc.BuildTileGrid(2, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, grid.Columns)
	assert.Equal(t, 100, grid.TileSize)
	require.Len(t, grid.Tiles, 3)

	// Row-major placement, newest date first.
	assert.Equal(t, [2]int{0, 0}, [2]int{grid.Tiles[0].StartX, grid.Tiles[0].StartY})
	assert.Equal(t, [2]int{100, 0}, [2]int{grid.Tiles[1].StartX, grid.Tiles[1].StartY})
	assert.Equal(t, [2]int{0, 100}, [2]int{grid.Tiles[2].StartX, grid.Tiles[2].StartY})

	// The newest tile stacks that day's pins latest first.
	newest := grid.Tiles[0].Slices()
	require.Len(t, newest, 2)
	assert.Equal(t, evening.ID, newest[0].PinID)
	assert.Equal(t, morning.ID, newest[1].PinID)

	// The evening slice carries the displacement from the morning pin; the
	// day's first pin has nothing to measure against.
	assert.Greater(t, newest[0].DisplacementMeters, 1000.0)
	assert.Zero(t, newest[1].DisplacementMeters)

	assert.Equal(t, 1, grid.Tiles[1].SliceCount())
	assert.Equal(t, 1, grid.Tiles[2].SliceCount())
}

func TestBuildTileGridDefaults(t *testing.T) {
	svc, _ := setupVizService(t)

	grid, err := svc.BuildTileGrid(0, -5)
	require.NoError(t, err)

	assert.Equal(t, defaultGridColumns, grid.Columns)
	assert.Equal(t, defaultTileSize, grid.TileSize)
	assert.Empty(t, grid.Tiles)
}
