package model

// Holds all external facing types and constants.

// A physical stop record from the static feed. Immutable once loaded.
type Stop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

type Route struct {
	ID        string
	ShortName string
	LongName  string
}

type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

type Calendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekday   int8
}

type ExceptionType int8

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

type CalendarDate struct {
	ServiceID     string
	Date          string
	ExceptionType ExceptionType
}

// A representative coordinate for a logical station.
type Coordinate struct {
	Lat float64
	Lon float64
}

// A scheduled departure from a logical station. Minute is minutes
// since local midnight of the service day, and may exceed 1439 for
// trips running past midnight.
type Departure struct {
	TripID   string
	Route    string
	Headsign string
	Minute   int
	Display  string
}

type BoardStatus int8

const (
	StatusScheduled BoardStatus = iota
	StatusLive
)

func (s BoardStatus) String() string {
	if s == StatusLive {
		return "live"
	}
	return "scheduled"
}

// A single row on a station's departure board. Computed per query,
// never stored.
type BoardEntry struct {
	TripID   string
	Route    string
	Headsign string
	Minutes  int
	Display  string
	Status   BoardStatus
}
