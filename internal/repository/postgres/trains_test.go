package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func insertTrain(t *testing.T, store *Store, train domain.Train) int64 {
	t.Helper()
	id, err := store.Trains().Create(context.Background(), train)
	require.NoError(t, err)
	return id
}

func testTrain(remaining int) domain.Train {
	return domain.Train{
		DepartureCity:  "Paris",
		ArrivalCity:    "Lyon",
		DepartureDate:  time.Now().AddDate(0, 0, 7).UTC().Truncate(time.Hour),
		DepartureHour:  "09:30",
		PriceCents:     4500,
		RemainingSeats: remaining,
	}
}

func TestTrainCreateAndGet(t *testing.T) {
	store := testStore(t)

	id := insertTrain(t, store, testTrain(50))

	got, err := store.Trains().Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Paris", got.DepartureCity)
	assert.Equal(t, "Lyon", got.ArrivalCity)
	assert.Equal(t, int64(4500), got.PriceCents)
	assert.Equal(t, 50, got.RemainingSeats)
}

func TestTrainGetNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Trains().Get(context.Background(), -1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrainSearchDayWindow(t *testing.T) {
	store := testStore(t)

	day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 30)

	early := testTrain(10)
	early.DepartureCity = "Nantes"
	early.ArrivalCity = "Nice"
	early.DepartureDate = day.Add(1 * time.Hour)
	earlyID := insertTrain(t, store, early)

	late := testTrain(10)
	late.DepartureCity = "Nantes"
	late.ArrivalCity = "Nice"
	late.DepartureDate = day.Add(23 * time.Hour)
	lateID := insertTrain(t, store, late)

	nextDay := testTrain(10)
	nextDay.DepartureCity = "Nantes"
	nextDay.ArrivalCity = "Nice"
	nextDay.DepartureDate = day.Add(25 * time.Hour)
	insertTrain(t, store, nextDay)

	got, err := store.Trains().Search(context.Background(), "Nantes", "Nice", &day)
	require.NoError(t, err)

	var ids []int64
	for _, tr := range got {
		ids = append(ids, tr.ID)
	}

	// only the two trains inside [day, day+24h), ascending by departure
	assert.Equal(t, []int64{earlyID, lateID}, ids)
}

func TestTrainSearchExactCityMatch(t *testing.T) {
	store := testStore(t)

	tr := testTrain(10)
	tr.DepartureCity = "Bordeaux"
	tr.ArrivalCity = "Lille"
	insertTrain(t, store, tr)

	got, err := store.Trains().Search(context.Background(), "Bordeaux", "Strasbourg", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReserveSeats(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id := insertTrain(t, store, testTrain(2))

	require.NoError(t, store.Trains().ReserveSeats(ctx, id, 2))

	got, err := store.Trains().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RemainingSeats)

	err = store.Trains().ReserveSeats(ctx, id, 1)
	assert.ErrorIs(t, err, repository.ErrInsufficientSeats)
}

func TestReserveSeatsNotFound(t *testing.T) {
	store := testStore(t)

	err := store.Trains().ReserveSeats(context.Background(), -1, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReserveSeatsConcurrent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id := insertTrain(t, store, testTrain(2))

	// four racers for two seats: exactly two may win
	results := make([]error, 4)
	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			results[i] = store.Trains().ReserveSeats(ctx, id, 1)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var wins, losses int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, repository.ErrInsufficientSeats)
		losses++
	}

	assert.Equal(t, 2, wins)
	assert.Equal(t, 2, losses)

	got, err := store.Trains().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RemainingSeats)
}

func TestBatchCreate(t *testing.T) {
	store := testStore(t)

	a := testTrain(5)
	a.DepartureCity = "Toulouse"
	a.ArrivalCity = "Montpellier"
	b := a
	b.DepartureDate = a.DepartureDate.Add(48 * time.Hour)

	require.NoError(t, store.Trains().BatchCreate(context.Background(), []domain.Train{a, b}))

	got, err := store.Trains().Search(context.Background(), "Toulouse", "Montpellier", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(got), 2)
}
