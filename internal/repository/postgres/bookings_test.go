package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, store *Store) *domain.User {
	t.Helper()

	u := &domain.User{
		Email:         fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash:  "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		AccountNumber: "ACC1234",
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestBookingCreateAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	user := insertUser(t, store)
	trainID := insertTrain(t, store, testTrain(10))

	b := &domain.Booking{
		UserEmail:  user.Email,
		TrainID:    trainID,
		Seats:      2,
		TotalCents: 9000,
		Status:     "confirmed",
	}
	require.NoError(t, store.Bookings().Create(ctx, b))
	require.NotEqual(t, uuid.Nil, b.ID)
	require.False(t, b.CreatedAt.IsZero())

	got, err := store.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, user.Email, got.UserEmail)
	assert.Equal(t, trainID, got.TrainID)
	assert.Equal(t, 2, got.Seats)
	assert.Equal(t, int64(9000), got.TotalCents)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, "Paris", got.Train.DepartureCity)
	assert.Equal(t, "Lyon", got.Train.ArrivalCity)
}

func TestBookingGetNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Bookings().Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingCreateUnknownTrain(t *testing.T) {
	store := testStore(t)

	user := insertUser(t, store)

	err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserEmail:  user.Email,
		TrainID:    -1,
		Seats:      1,
		TotalCents: 4500,
		Status:     "confirmed",
	})
	assert.Error(t, err)
}

func TestBookingListByUser(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	user := insertUser(t, store)
	trainID := insertTrain(t, store, testTrain(10))

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		b := &domain.Booking{
			UserEmail:  user.Email,
			TrainID:    trainID,
			Seats:      1,
			TotalCents: 4500,
			Status:     "confirmed",
		}
		require.NoError(t, store.Bookings().Create(ctx, b))
		ids = append(ids, b.ID)
		time.Sleep(5 * time.Millisecond)
	}

	got, err := store.Bookings().ListByUser(ctx, user.Email)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// most recent first
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
	assert.Equal(t, ids[0], got[2].ID)

	for _, bt := range got {
		assert.Equal(t, trainID, bt.Train.ID)
	}
}

func TestBookingListByUserEmpty(t *testing.T) {
	store := testStore(t)

	user := insertUser(t, store)

	got, err := store.Bookings().ListByUser(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Empty(t, got)
}
