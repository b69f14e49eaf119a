package sport_test

import (
	"context"
	"testing"

	domain "github.com/RealMosam/SEMS/internal/domain/sport"
	"github.com/RealMosam/SEMS/internal/infrastructure/memory"
	"github.com/RealMosam/SEMS/internal/usecase/sport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *sport.Service {
	return sport.NewService(memory.NewSportCatalog(
		[]domain.Sport{
			{ID: 1, Name: "Cricket", NoOfPlayers: 30, Type: domain.TypeOutdoor},
			{ID: 4, Name: "Chess", NoOfPlayers: 2, Type: domain.TypeIndoor},
		},
		[]domain.Event{
			{ID: 1, SportID: 1, Name: "IPL", NoOfSlots: 30},
			{ID: 3, SportID: 1, Name: "Worldcup", NoOfSlots: 100},
			{ID: 4, SportID: 4, Name: "Championship", NoOfSlots: 20},
		},
	))
}

func TestListAndGetSports(t *testing.T) {
	t.Parallel()

	svc := newService()
	ctx := context.Background()

	sports, err := svc.ListSports(ctx)
	require.NoError(t, err)
	assert.Len(t, sports, 2)

	chess, err := svc.GetSport(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeIndoor, chess.Type)

	_, err = svc.GetSport(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrSportNotFound)

	_, err = svc.GetSport(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindSportByName(t *testing.T) {
	t.Parallel()

	svc := newService()
	ctx := context.Background()

	got, err := svc.FindSportByName(ctx, "  cricket ")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	_, err = svc.FindSportByName(ctx, "Curling")
	assert.ErrorIs(t, err, domain.ErrSportNotFound)

	_, err = svc.FindSportByName(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListEvents(t *testing.T) {
	t.Parallel()

	svc := newService()
	ctx := context.Background()

	all, err := svc.ListEvents(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cricket, err := svc.ListEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cricket, 2)
	assert.Equal(t, "IPL", cricket[0].Name)
	assert.Equal(t, "Worldcup", cricket[1].Name)

	_, err = svc.ListEvents(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrSportNotFound)

	_, err = svc.ListEvents(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetEvent(t *testing.T) {
	t.Parallel()

	svc := newService()
	ctx := context.Background()

	e, err := svc.GetEvent(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 20, e.NoOfSlots)

	_, err = svc.GetEvent(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
