package sport

import (
	"errors"
	"time"
)

var (
	// ErrSportNotFound indicates a sport could not be located.
	ErrSportNotFound = errors.New("sport not found")
	// ErrEventNotFound indicates an event could not be located.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidInput wraps catalog query validation failures.
	ErrInvalidInput = errors.New("invalid catalog query")
)

// Type distinguishes where a sport is played.
type Type string

const (
	TypeIndoor  Type = "Indoor"
	TypeOutdoor Type = "Outdoor"
)

// Sport is a catalog entry describing a discipline.
type Sport struct {
	ID          int    `json:"sportId"`
	Name        string `json:"sportName"`
	NoOfPlayers int    `json:"noOfPlayers"`
	Type        Type   `json:"sportType"`
}

// Event is a scheduled competition for a sport.
type Event struct {
	ID        int       `json:"eventId"`
	SportID   int       `json:"sportId"`
	Name      string    `json:"eventName"`
	Date      time.Time `json:"date"`
	NoOfSlots int       `json:"noOfSlots"`
}
