// Package seed loads the sample rows every fresh deployment starts with.
// Loading is idempotent: rows that already exist are left untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	participationdomain "github.com/RealMosam/SEMS/internal/domain/participation"
	playerdomain "github.com/RealMosam/SEMS/internal/domain/player"
	sportdomain "github.com/RealMosam/SEMS/internal/domain/sport"
	authusecase "github.com/RealMosam/SEMS/internal/usecase/auth"
	participationusecase "github.com/RealMosam/SEMS/internal/usecase/participation"
	playerusecase "github.com/RealMosam/SEMS/internal/usecase/player"

	"github.com/google/uuid"
)

// namespace scopes the name-based ids of fixture rows.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/RealMosam/SEMS/fixtures"))

// PlayerID returns the stable id of the fixture player called name, so services
// seeded independently agree on it.
func PlayerID(name string) string {
	return uuid.NewSHA1(namespace, []byte("player/"+name)).String()
}

func participationID(playerName string, eventID int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("participation/%s/%d", playerName, eventID))).String()
}

// DefaultUsername and DefaultPassword are the sample login.
const (
	DefaultUsername = "mosam"
	DefaultPassword = "test@123"
)

// Sports returns the sample sports catalog.
func Sports() []sportdomain.Sport {
	return []sportdomain.Sport{
		{ID: 1, Name: "Cricket", NoOfPlayers: 30, Type: sportdomain.TypeOutdoor},
		{ID: 2, Name: "FootBall", NoOfPlayers: 20, Type: sportdomain.TypeOutdoor},
		{ID: 3, Name: "Hockey", NoOfPlayers: 22, Type: sportdomain.TypeOutdoor},
		{ID: 4, Name: "Chess", NoOfPlayers: 2, Type: sportdomain.TypeIndoor},
		{ID: 5, Name: "Carroms", NoOfPlayers: 4, Type: sportdomain.TypeIndoor},
		{ID: 6, Name: "Badminton", NoOfPlayers: 22, Type: sportdomain.TypeOutdoor},
	}
}

// Events returns the sample events.
func Events() []sportdomain.Event {
	day := func(month time.Month, d int) time.Time { return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC) }
	return []sportdomain.Event{
		{ID: 1, SportID: 1, Name: "IPL", Date: day(time.March, 22), NoOfSlots: 30},
		{ID: 2, SportID: 2, Name: "FIFA", Date: day(time.June, 14), NoOfSlots: 30},
		{ID: 3, SportID: 1, Name: "Worldcup", Date: day(time.October, 5), NoOfSlots: 100},
		{ID: 4, SportID: 4, Name: "Championship", Date: day(time.November, 20), NoOfSlots: 20},
	}
}

// Players returns the sample player registrations.
func Players() []playerusecase.CreateInput {
	return []playerusecase.CreateInput{
		{ID: PlayerID("MSD"), SportID: 1, Name: "MSD", Age: 37, ContactNumber: "9999999990", Email: "msd@gmail.com", Gender: string(playerdomain.GenderMale)},
		{ID: PlayerID("Neymar"), SportID: 2, Name: "Neymar", Age: 33, ContactNumber: "9999999980", Email: "neymar@gmail.com", Gender: string(playerdomain.GenderMale)},
		{ID: PlayerID("Messi"), SportID: 2, Name: "Messi", Age: 36, ContactNumber: "9999999960", Email: "messi@gmail.com", Gender: string(playerdomain.GenderMale)},
	}
}

// Participations returns the sample participation rows.
func Participations() []participationdomain.Participation {
	return []participationdomain.Participation{
		{
			ID:        participationID("MSD", 1),
			PlayerID:  PlayerID("MSD"),
			EventID:   1,
			Status:    participationdomain.StatusApproved,
			CreatedBy: DefaultUsername,
		},
	}
}

// LoadCredentials registers the sample login through the auth service so it is stored hashed.
func LoadCredentials(ctx context.Context, svc *authusecase.Service) error {
	_, err := svc.Register(ctx, DefaultUsername, DefaultPassword)
	if err != nil && !errors.Is(err, authdomain.ErrUsernameExists) {
		return fmt.Errorf("seed credential %q: %w", DefaultUsername, err)
	}
	return nil
}

// LoadPlayers stores the sample players.
func LoadPlayers(ctx context.Context, svc *playerusecase.Service) error {
	for _, in := range Players() {
		if _, err := svc.Create(ctx, in); err != nil && !errors.Is(err, playerdomain.ErrAlreadyExists) {
			return fmt.Errorf("seed player %q: %w", in.Name, err)
		}
	}
	return nil
}

// LoadParticipations stores the sample participations.
func LoadParticipations(ctx context.Context, svc *participationusecase.Service) error {
	for _, p := range Participations() {
		if err := svc.Seed(ctx, &p); err != nil && !errors.Is(err, participationdomain.ErrDuplicate) {
			return fmt.Errorf("seed participation %s: %w", p.ID, err)
		}
	}
	return nil
}
