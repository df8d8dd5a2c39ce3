package models

import (
	"encoding/json"
	"time"
)

// Slice is a single rendering atom within a tile: one recorded pin mapped
// to a visual unit.
type Slice struct {
	PinID              int64     `json:"pinId"`
	ArrivalTime        time.Time `json:"arrivalTime"`
	DurationSeconds    int       `json:"durationSeconds"`
	Address            string    `json:"address,omitempty"`
	DisplacementMeters float64   `json:"displacementMeters"`
}

// Tile is a rectangular grid cell aggregating slices for display. Slice
// order is insertion order and carries the on-screen stacking order, so
// appends go through AddSlice only.
type Tile struct {
	StartX int `json:"startX"`
	StartY int `json:"startY"`
	Width  int `json:"width"`
	Height int `json:"height"`

	slices []Slice
}

// NewTile creates an empty tile with unset geometry.
func NewTile() *Tile {
	return &Tile{}
}

// NewTileAt creates a fully specified tile. Geometry and slices are stored
// as given; zero sizes and empty slice lists are allowed. The slices are
// copied, so the caller's backing array stays independent.
func NewTileAt(startX, startY, width, height int, slices []Slice) *Tile {
	t := &Tile{
		StartX: startX,
		StartY: startY,
		Width:  width,
		Height: height,
	}
	t.slices = append(t.slices, slices...)
	return t
}

// AddSlice appends a slice to the end of the tile's stacking order.
func (t *Tile) AddSlice(slice Slice) {
	t.slices = append(t.slices, slice)
}

// Slices returns a copy of the tile's slices in stacking order. Mutating
// the returned slice does not affect the tile.
func (t *Tile) Slices() []Slice {
	out := make([]Slice, len(t.slices))
	copy(out, t.slices)
	return out
}

// SliceCount returns the number of slices within this tile.
func (t *Tile) SliceCount() int {
	return len(t.slices)
}

// MarshalJSON includes the tile's slices alongside its geometry.
func (t *Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StartX int     `json:"startX"`
		StartY int     `json:"startY"`
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Slices []Slice `json:"slices"`
	}{t.StartX, t.StartY, t.Width, t.Height, t.Slices()})
}

// TileGrid is the renderable layout served to the visualization frontend.
type TileGrid struct {
	Columns  int     `json:"columns"`
	TileSize int     `json:"tileSize"`
	Tiles    []*Tile `json:"tiles"`
}
