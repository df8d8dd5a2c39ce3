package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/clidwin/visualimprints-go/internal/database"
	"github.com/clidwin/visualimprints-go/internal/models"
)

// ErrPinNotFound is returned by Update and Delete when no stored row matches
// the pin's id.
var ErrPinNotFound = errors.New("pin not found")

// pinColumns lists the pins table columns in scan order.
var pinColumns = strings.Join(database.AllColumns(), ", ")

// PinRepository handles database operations for geospatial pins.
type PinRepository struct {
	store *database.Store
}

// NewPinRepository creates a new pin repository
func NewPinRepository(store *database.Store) *PinRepository {
	return &PinRepository{store: store}
}

// Add inserts a new pin and backfills the generated id, so a later Update or
// Delete addresses the exact row that was written. Coordinates are rounded
// to storage precision on the way in.
func (r *PinRepository) Add(pin *models.GeospatialPin) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}

	query := `INSERT INTO pins (address, arrival_date, arrival_time, duration, location_lat, location_long)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := db.Exec(query,
		pin.Address,
		pin.ArrivalTime.Format(database.DateFormat),
		pin.ArrivalTime.Format(database.TimeFormat),
		pin.DurationSeconds,
		formatCoordinate(pin.Latitude),
		formatCoordinate(pin.Longitude),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated pin id: %w", err)
	}
	pin.ID = id

	log.Printf("New pin %d added", id)
	return nil
}

// GetByID retrieves a single pin by id. Returns (nil, nil) when no row
// matches.
func (r *PinRepository) GetByID(id int64) (*models.GeospatialPin, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + pinColumns + ` FROM pins WHERE id = ?`

	pin, err := scanPin(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin %d: %w", id, err)
	}

	return pin, nil
}

// GetMostRecent retrieves the pin with the latest arrival. Returns
// (nil, nil) when the table is empty.
func (r *PinRepository) GetMostRecent() (*models.GeospatialPin, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + pinColumns + ` FROM pins
		ORDER BY arrival_date DESC, arrival_time DESC
		LIMIT 1`

	pin, err := scanPin(db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent pin: %w", err)
	}

	return pin, nil
}

// GetAllDates returns the distinct arrival dates across all pins, newest
// first.
func (r *PinRepository) GetAllDates() ([]string, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT DISTINCT arrival_date FROM pins ORDER BY arrival_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pin dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan pin date: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// GetAllFromDates returns every pin whose arrival date is a member of the
// given set, ordered by (arrival_date, arrival_time) descending.
func (r *PinRepository) GetAllFromDates(dates []string) ([]models.GeospatialPin, error) {
	if len(dates) == 0 {
		// An empty membership set matches nothing; "IN ()" is not valid SQLite.
		return []models.GeospatialPin{}, nil
	}

	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	placeholders := strings.TrimPrefix(strings.Repeat(",?", len(dates)), ",")
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE arrival_date IN (%s)
		ORDER BY arrival_date DESC, arrival_time DESC`, pinColumns, database.TableName, placeholders)

	args := make([]interface{}, len(dates))
	for i, date := range dates {
		args[i] = date
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pins by dates: %w", err)
	}
	defer rows.Close()

	return collectPins(rows)
}

// GetLast24Hours retrieves all pins whose arrival is strictly within the
// last 24 hours. Candidate rows are prefiltered by yesterday's and today's
// date strings, then filtered by instant; a pin older than 24 hours whose
// arrival crossed a date boundary two days back is outside the prefilter and
// therefore missed.
func (r *PinRepository) GetLast24Hours() ([]models.GeospatialPin, error) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	dates := []string{
		yesterday.Format(database.DateFormat),
		now.Format(database.DateFormat),
	}

	pins, err := r.GetAllFromDates(dates)
	if err != nil {
		return nil, err
	}

	recent := make([]models.GeospatialPin, 0, len(pins))
	for _, pin := range pins {
		if pin.ArrivalTime.After(yesterday) {
			recent = append(recent, pin)
		}
	}

	return recent, nil
}

// GetAll returns every stored pin, newest first.
//
// Deprecated: superseded by GetAllFromDates and GetLast24Hours; retained for
// frontends that render the full history at once.
func (r *PinRepository) GetAll() ([]models.GeospatialPin, error) {
	db, err := r.store.DB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + pinColumns + ` FROM pins
		ORDER BY arrival_date DESC, arrival_time DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pins: %w", err)
	}
	defer rows.Close()

	return collectPins(rows)
}

// Update overwrites the stored row matching the pin's id.
func (r *PinRepository) Update(pin *models.GeospatialPin) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}

	query := `UPDATE pins
		SET address = ?, arrival_date = ?, arrival_time = ?, duration = ?, location_lat = ?, location_long = ?
		WHERE id = ?`

	result, err := db.Exec(query,
		pin.Address,
		pin.ArrivalTime.Format(database.DateFormat),
		pin.ArrivalTime.Format(database.TimeFormat),
		pin.DurationSeconds,
		formatCoordinate(pin.Latitude),
		formatCoordinate(pin.Longitude),
		pin.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pin %d: %w", pin.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPinNotFound
	}

	return nil
}

// Delete removes the stored row matching the pin's id.
func (r *PinRepository) Delete(pin *models.GeospatialPin) error {
	db, err := r.store.DB()
	if err != nil {
		return err
	}

	result, err := db.Exec(`DELETE FROM pins WHERE id = ?`, pin.ID)
	if err != nil {
		return fmt.Errorf("failed to delete pin %d: %w", pin.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPinNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPin maps one stored row back to a pin. A malformed stored date, time
// or coordinate fails the mapping with an error; no partial entity is ever
// returned.
func scanPin(sc rowScanner) (*models.GeospatialPin, error) {
	var (
		pin          models.GeospatialPin
		arrivalDate  string
		arrivalTime  string
		latitudeStr  string
		longitudeStr string
	)

	err := sc.Scan(
		&pin.ID,
		&pin.Address,
		&arrivalDate,
		&arrivalTime,
		&pin.DurationSeconds,
		&latitudeStr,
		&longitudeStr,
	)
	if err != nil {
		return nil, err
	}

	arrival, err := time.ParseInLocation(database.DateTimeFormat, arrivalDate+" "+arrivalTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored arrival %q: %w", arrivalDate+" "+arrivalTime, err)
	}
	pin.ArrivalTime = arrival

	if pin.Latitude, err = strconv.ParseFloat(latitudeStr, 64); err != nil {
		return nil, fmt.Errorf("failed to parse stored latitude %q: %w", latitudeStr, err)
	}
	if pin.Longitude, err = strconv.ParseFloat(longitudeStr, 64); err != nil {
		return nil, fmt.Errorf("failed to parse stored longitude %q: %w", longitudeStr, err)
	}

	return &pin, nil
}

// collectPins drains a multi-row result. A single malformed row aborts the
// whole scan rather than injecting a gap into the results.
func collectPins(rows *sql.Rows) ([]models.GeospatialPin, error) {
	var pins []models.GeospatialPin
	for rows.Next() {
		pin, err := scanPin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		pins = append(pins, *pin)
	}

	return pins, rows.Err()
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(models.RoundCoordinate(value), 'f', -1, 64)
}
