package database

// Table and column names for the pins store.
const (
	TableName = "pins"

	ColumnID           = "id"
	ColumnAddress      = "address"
	ColumnArrivalDate  = "arrival_date"
	ColumnArrivalTime  = "arrival_time"
	ColumnDuration     = "duration"
	ColumnLocationLat  = "location_lat"
	ColumnLocationLong = "location_long"
)

// Layouts for the stored arrival columns. All three are fixed-width, so
// lexicographic ordering on the stored strings matches chronological
// ordering, and an arrival_date joined to an arrival_time with a single
// space parses under DateTimeFormat.
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// AllColumns returns every column of the pins table in scan order.
func AllColumns() []string {
	return []string{
		ColumnID,
		ColumnAddress,
		ColumnArrivalDate,
		ColumnArrivalTime,
		ColumnDuration,
		ColumnLocationLat,
		ColumnLocationLong,
	}
}
