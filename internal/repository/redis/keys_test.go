package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrainKeys(t *testing.T) {
	assert.Equal(t, "railgo:v1:train:42:summary", KeyTrainSummary(42))
	assert.Equal(t, "railgo:v1:train:42:availability", KeyTrainAvailability(42))
}

func TestKeySearch(t *testing.T) {
	assert.Equal(t, "railgo:v1:search:Paris:Lyon:any", KeySearch("Paris", "Lyon", nil))

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "railgo:v1:search:Paris:Lyon:2026-03-14", KeySearch("Paris", "Lyon", &day))
}

func TestSessionAndIdemKeys(t *testing.T) {
	assert.Equal(t, "railgo:v1:sess:abc", KeySession("abc"))
	assert.Equal(t,
		"railgo:v1:idem:bookings:alice@example.com:k1",
		KeyIdemBooking("alice@example.com", "k1"),
	)
}

func TestChannelTrainsChanged(t *testing.T) {
	assert.Equal(t, "railgo:v1:trains:changed", ChannelTrainsChanged())
}
