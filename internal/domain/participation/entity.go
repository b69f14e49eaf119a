package participation

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a participation could not be located.
	ErrNotFound = errors.New("participation not found")
	// ErrDuplicate signals the player already participates in the event.
	ErrDuplicate = errors.New("player already registered for event")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid participation status")
	// ErrInvalidTransition indicates a status change that is not allowed.
	ErrInvalidTransition = errors.New("participation status transition not allowed")
	// ErrEventFull indicates every slot of the event is already approved.
	ErrEventFull = errors.New("event has no free slots")
	// ErrInvalidInput wraps participation validation failures.
	ErrInvalidInput = errors.New("invalid participation")
)

// Status of a participation request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusDeclined:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// CanTransition reports whether the status may move to next.
// Only pending requests can be decided; decisions are final.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusDeclined)
}

// Participation links a player to an event.
type Participation struct {
	ID        string    `json:"participationId"`
	PlayerID  string    `json:"playerId"`
	EventID   int       `json:"eventId"`
	Status    Status    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
