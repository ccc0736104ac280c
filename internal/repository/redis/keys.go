package redis

import (
	"fmt"
	"time"
)

const ns = "railgo:v1"

func KeyTrainSummary(trainID int64) string {
	return fmt.Sprintf("%s:train:%d:summary", ns, trainID)
}

func KeyTrainAvailability(trainID int64) string {
	return fmt.Sprintf("%s:train:%d:availability", ns, trainID)
}

// KeySearch identifies a cached search result. day may be nil when the
// caller did not filter by date.
func KeySearch(departureCity, arrivalCity string, day *time.Time) string {
	d := "any"
	if day != nil {
		d = day.Format("2006-01-02")
	}
	return fmt.Sprintf("%s:search:%s:%s:%s", ns, departureCity, arrivalCity, d)
}

func KeySession(token string) string {
	return fmt.Sprintf("%s:sess:%s", ns, token)
}

func KeyIdemBooking(email, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s:%s", ns, email, idemKey)
}

func ChannelTrainsChanged() string {
	return ns + ":trains:changed"
}
