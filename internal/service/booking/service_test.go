package booking

import (
	"context"
	"testing"

	"github.com/railgo/railgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRejectsInvalidSeats(t *testing.T) {
	svc := New(nil, nil, nil, nil, Config{})
	ident := domain.Identity{Email: "alice@example.com", AccountNumber: "ACC1001"}

	for _, seats := range []int{0, -1, -100} {
		b, err := svc.Create(context.Background(), ident, 1, seats, domain.BookingOptions{}, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSeats)
		assert.Nil(t, b)
	}
}

func TestNewDefaultsMaxTxAttempts(t *testing.T) {
	svc := New(nil, nil, nil, nil, Config{})
	assert.Equal(t, 3, svc.cfg.MaxTxAttempts)

	svc = New(nil, nil, nil, nil, Config{MaxTxAttempts: 5})
	assert.Equal(t, 5, svc.cfg.MaxTxAttempts)
}
