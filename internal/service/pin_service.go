package service

import (
	"fmt"
	"time"

	"github.com/clidwin/visualimprints-go/internal/models"
	"github.com/clidwin/visualimprints-go/internal/repository"
)

// PinService handles business logic for geospatial pins
type PinService struct {
	pinRepo *repository.PinRepository
}

// NewPinService creates a new pin service
func NewPinService(pinRepo *repository.PinRepository) *PinService {
	return &PinService{pinRepo: pinRepo}
}

// CreatePin validates and persists a new pin. A missing arrival time
// defaults to now.
func (s *PinService) CreatePin(req models.PinRequest) (*models.GeospatialPin, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	arrival := time.Now()
	if req.ArrivalTime != nil {
		arrival = *req.ArrivalTime
	}

	pin := models.NewGeospatialPin(req.Latitude, req.Longitude, arrival, req.DurationSeconds)
	pin.Address = req.Address

	if err := s.pinRepo.Add(pin); err != nil {
		return nil, fmt.Errorf("failed to create pin: %w", err)
	}

	return pin, nil
}

// GetPinByID retrieves a single pin by id. Returns (nil, nil) when absent.
func (s *PinService) GetPinByID(id int64) (*models.GeospatialPin, error) {
	pin, err := s.pinRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}
	return pin, nil
}

// GetMostRecentPin retrieves the latest recorded pin. Returns (nil, nil)
// when nothing has been recorded yet.
func (s *PinService) GetMostRecentPin() (*models.GeospatialPin, error) {
	pin, err := s.pinRepo.GetMostRecent()
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent pin: %w", err)
	}
	return pin, nil
}

// GetRecordedDates retrieves the distinct dates with at least one pin,
// newest first.
func (s *PinService) GetRecordedDates() ([]string, error) {
	dates, err := s.pinRepo.GetAllDates()
	if err != nil {
		return nil, fmt.Errorf("failed to get recorded dates: %w", err)
	}
	return dates, nil
}

// GetPinsFromDates retrieves all pins recorded on any of the given dates.
func (s *PinService) GetPinsFromDates(dates []string) ([]models.GeospatialPin, error) {
	pins, err := s.pinRepo.GetAllFromDates(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to get pins by dates: %w", err)
	}
	return pins, nil
}

// GetLast24Hours retrieves all pins recorded within the last 24 hours.
func (s *PinService) GetLast24Hours() ([]models.GeospatialPin, error) {
	pins, err := s.pinRepo.GetLast24Hours()
	if err != nil {
		return nil, fmt.Errorf("failed to get last 24 hours of pins: %w", err)
	}
	return pins, nil
}

// GetAllPins retrieves the full pin history, newest first.
func (s *PinService) GetAllPins() ([]models.GeospatialPin, error) {
	pins, err := s.pinRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get pins: %w", err)
	}
	return pins, nil
}

// UpdatePin overwrites the stored pin with the given id. Returns
// repository.ErrPinNotFound when no such pin exists.
func (s *PinService) UpdatePin(id int64, req models.PinRequest) (*models.GeospatialPin, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.pinRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}
	if existing == nil {
		return nil, repository.ErrPinNotFound
	}

	existing.Latitude = models.RoundCoordinate(req.Latitude)
	existing.Longitude = models.RoundCoordinate(req.Longitude)
	existing.DurationSeconds = req.DurationSeconds
	existing.Address = req.Address
	if req.ArrivalTime != nil {
		existing.ArrivalTime = *req.ArrivalTime
	}

	if err := s.pinRepo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeletePin removes the stored pin with the given id. Returns
// repository.ErrPinNotFound when no such pin exists.
func (s *PinService) DeletePin(id int64) error {
	return s.pinRepo.Delete(&models.GeospatialPin{ID: id})
}

func validateRequest(req models.PinRequest) error {
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", req.Longitude)
	}
	if req.DurationSeconds < 0 {
		return fmt.Errorf("duration %d must not be negative", req.DurationSeconds)
	}
	return nil
}
