package player

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a player could not be located.
	ErrNotFound = errors.New("player not found")
	// ErrAlreadyExists signals an id collision on create.
	ErrAlreadyExists = errors.New("player already exists")
	// ErrInvalidGender indicates the gender value is not supported.
	ErrInvalidGender = errors.New("invalid gender")
	// ErrInvalidInput wraps player validation failures.
	ErrInvalidInput = errors.New("invalid player")
)

// Gender of a registered player.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender normalises user input into a supported Gender.
func ParseGender(raw string) (Gender, error) {
	for _, g := range []Gender{GenderMale, GenderFemale, GenderOther} {
		if strings.EqualFold(raw, string(g)) {
			return g, nil
		}
	}
	return "", ErrInvalidGender
}

// Player captures a registered athlete.
type Player struct {
	ID            string    `json:"playerId"`
	SportID       int       `json:"sportId"`
	Name          string    `json:"playerName"`
	Age           int       `json:"age"`
	ContactNumber string    `json:"contactNumber"`
	Email         string    `json:"email"`
	Gender        Gender    `json:"gender"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Update applies partial field updates to the player.
func (p *Player) Update(name, contact, email *string, age, sportID *int, gender *Gender) {
	if name != nil {
		p.Name = *name
	}
	if contact != nil {
		p.ContactNumber = *contact
	}
	if email != nil {
		p.Email = *email
	}
	if age != nil {
		p.Age = *age
	}
	if sportID != nil {
		p.SportID = *sportID
	}
	if gender != nil {
		p.Gender = *gender
	}
	p.UpdatedAt = time.Now().UTC()
}
