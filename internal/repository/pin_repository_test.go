package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clidwin/visualimprints-go/internal/database"
	"github.com/clidwin/visualimprints-go/internal/models"
)

// setupRepo creates a migrated on-disk store under the test's temp dir and
// returns a repository bound to it.
func setupRepo(t *testing.T) (*PinRepository, *database.Store) {
	t.Helper()

	store, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "pins.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db, err := store.DB()
	require.NoError(t, err)
	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	return NewPinRepository(store), store
}

func mustAdd(t *testing.T, repo *PinRepository, lat, long float64, arrival time.Time, duration int) *models.GeospatialPin {
	t.Helper()
	pin := models.NewGeospatialPin(lat, long, arrival, duration)
	require.NoError(t, repo.Add(pin))
	require.Positive(t, pin.ID)
	return pin
}

func localTime(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func TestAddAndGetByIDRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)

	arrival := localTime(2025, time.August, 26, 14, 30, 5)
	pin := models.NewGeospatialPin(47.123456789123, -122.987654321987, arrival, 600)
	pin.Address = "1600 Amphitheatre Pkwy"
	require.NoError(t, repo.Add(pin))

	got, err := repo.GetByID(pin.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, pin.ID, got.ID)
	assert.Equal(t, 47.12345679, got.Latitude)
	assert.Equal(t, -122.98765432, got.Longitude)
	assert.True(t, got.ArrivalTime.Equal(arrival), "arrival should round-trip to the second")
	assert.Equal(t, 600, got.DurationSeconds)
	assert.Equal(t, "1600 Amphitheatre Pkwy", got.Address)
}

func TestAddAssignsDistinctIDsForIdenticalArrivals(t *testing.T) {
	repo, _ := setupRepo(t)

	arrival := localTime(2025, time.August, 26, 9, 0, 0)
	first := mustAdd(t, repo, 1, 1, arrival, 10)
	second := mustAdd(t, repo, 2, 2, arrival, 20)

	assert.NotEqual(t, first.ID, second.ID, "pins recorded at the same instant must stay distinguishable")

	got, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, float64(2), got.Latitude)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	pin, err := repo.GetByID(12345)
	require.NoError(t, err)
	assert.Nil(t, pin)
}

func TestGetMostRecent(t *testing.T) {
	repo, _ := setupRepo(t)

	// Inserted out of chronological order on purpose.
	mustAdd(t, repo, 1, 1, localTime(2025, time.August, 25, 23, 59, 59), 0)
	latest := mustAdd(t, repo, 2, 2, localTime(2025, time.August, 26, 8, 0, 0), 0)
	mustAdd(t, repo, 3, 3, localTime(2025, time.August, 26, 7, 59, 59), 0)

	got, err := repo.GetMostRecent()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, latest.ID, got.ID)
}

func TestGetMostRecentEmpty(t *testing.T) {
	repo, _ := setupRepo(t)

	got, err := repo.GetMostRecent()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAllOrdering(t *testing.T) {
	repo, _ := setupRepo(t)

	arrivals := []time.Time{
		localTime(2025, time.August, 24, 12, 0, 0),
		localTime(2025, time.August, 26, 6, 30, 0),
		localTime(2025, time.August, 25, 18, 45, 1),
		localTime(2025, time.August, 26, 6, 29, 59),
	}
	for i, arrival := range arrivals {
		mustAdd(t, repo, float64(i), float64(i), arrival, i)
	}

	pins, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, pins, len(arrivals))

	for i := 1; i < len(pins); i++ {
		assert.False(t, pins[i].ArrivalTime.After(pins[i-1].ArrivalTime),
			"pins must be ordered newest first, got %v before %v",
			pins[i-1].ArrivalTime, pins[i].ArrivalTime)
	}
}

func TestGetAllDatesDistinctDescending(t *testing.T) {
	repo, _ := setupRepo(t)

	mustAdd(t, repo, 1, 1, localTime(2025, time.August, 24, 10, 0, 0), 0)
	mustAdd(t, repo, 2, 2, localTime(2025, time.August, 24, 11, 0, 0), 0)
	mustAdd(t, repo, 3, 3, localTime(2025, time.August, 26, 9, 0, 0), 0)
	mustAdd(t, repo, 4, 4, localTime(2025, time.August, 25, 9, 0, 0), 0)

	dates, err := repo.GetAllDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-08-26", "2025-08-25", "2025-08-24"}, dates)
}

func TestGetAllFromDatesEmptySet(t *testing.T) {
	repo, _ := setupRepo(t)
	mustAdd(t, repo, 1, 1, localTime(2025, time.August, 26, 9, 0, 0), 0)

	pins, err := repo.GetAllFromDates(nil)
	require.NoError(t, err)
	assert.Empty(t, pins)

	pins, err = repo.GetAllFromDates([]string{})
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestGetAllFromDatesMembership(t *testing.T) {
	repo, _ := setupRepo(t)

	inSet := mustAdd(t, repo, 1, 1, localTime(2025, time.August, 25, 9, 0, 0), 0)
	mustAdd(t, repo, 2, 2, localTime(2025, time.August, 24, 9, 0, 0), 0)
	alsoIn := mustAdd(t, repo, 3, 3, localTime(2025, time.August, 26, 9, 0, 0), 0)

	pins, err := repo.GetAllFromDates([]string{"2025-08-26", "2025-08-25"})
	require.NoError(t, err)
	require.Len(t, pins, 2)

	// Newest date first, and never a row outside the requested set.
	assert.Equal(t, alsoIn.ID, pins[0].ID)
	assert.Equal(t, inSet.ID, pins[1].ID)
}

func TestGetLast24Hours(t *testing.T) {
	repo, _ := setupRepo(t)

	now := time.Now().Truncate(time.Second)
	tooOld := mustAdd(t, repo, 1, 1, now.Add(-25*time.Hour), 0)
	within := mustAdd(t, repo, 2, 2, now.Add(-23*time.Hour), 0)
	recent := mustAdd(t, repo, 3, 3, now.Add(-1*time.Hour), 0)
	current := mustAdd(t, repo, 4, 4, now, 0)

	pins, err := repo.GetLast24Hours()
	require.NoError(t, err)

	ids := make(map[int64]bool)
	for _, pin := range pins {
		ids[pin.ID] = true
	}

	assert.False(t, ids[tooOld.ID], "pin older than 24h must be excluded")
	assert.True(t, ids[within.ID])
	assert.True(t, ids[recent.ID])
	assert.True(t, ids[current.ID])
	assert.Len(t, pins, 3)
}

func TestUpdate(t *testing.T) {
	repo, _ := setupRepo(t)

	pin := mustAdd(t, repo, 10, 20, localTime(2025, time.August, 26, 12, 0, 0), 300)

	pin.Latitude = 11.5
	pin.DurationSeconds = 900
	pin.Address = "work"
	require.NoError(t, repo.Update(pin))

	got, err := repo.GetByID(pin.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 11.5, got.Latitude)
	assert.Equal(t, 900, got.DurationSeconds)
	assert.Equal(t, "work", got.Address)
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	pin := models.NewGeospatialPin(1, 1, localTime(2025, time.August, 26, 12, 0, 0), 0)
	pin.ID = 9999

	assert.ErrorIs(t, repo.Update(pin), ErrPinNotFound)
}

func TestDelete(t *testing.T) {
	repo, _ := setupRepo(t)

	pin := mustAdd(t, repo, 1, 1, localTime(2025, time.August, 26, 12, 0, 0), 0)
	require.NoError(t, repo.Delete(pin))

	got, err := repo.GetByID(pin.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.Delete(pin), ErrPinNotFound)
}

func TestOperationsOnClosedStore(t *testing.T) {
	repo, store := setupRepo(t)
	require.NoError(t, store.Close())

	pin := models.NewGeospatialPin(1, 1, time.Now(), 0)

	assert.ErrorIs(t, repo.Add(pin), database.ErrNotOpen)
	_, err := repo.GetByID(1)
	assert.ErrorIs(t, err, database.ErrNotOpen)
	_, err = repo.GetMostRecent()
	assert.ErrorIs(t, err, database.ErrNotOpen)
	_, err = repo.GetAllDates()
	assert.ErrorIs(t, err, database.ErrNotOpen)
	_, err = repo.GetAll()
	assert.ErrorIs(t, err, database.ErrNotOpen)
	assert.ErrorIs(t, repo.Update(pin), database.ErrNotOpen)
	assert.ErrorIs(t, repo.Delete(pin), database.ErrNotOpen)
}

func TestCorruptStoredTimeFailsScan(t *testing.T) {
	repo, store := setupRepo(t)

	db, err := store.DB()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pins (address, arrival_date, arrival_time, duration, location_lat, location_long)
		VALUES ('', '2025-08-26', 'not-a-time', 0, '1.0', '2.0')`)
	require.NoError(t, err)

	pins, err := repo.GetAll()
	assert.Error(t, err, "a malformed stored time must fail the scan, not inject a gap")
	assert.Nil(t, pins)
	assert.Contains(t, err.Error(), "parse")
}
