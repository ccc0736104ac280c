package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
)

// Train is a scheduled service instance with a fixed unit price and a live
// counter of unreserved seats. Only RemainingSeats is mutated after seeding.
type Train struct {
	ID             int64     `json:"id"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureDate  time.Time `json:"departure_date"`
	DepartureHour  string    `json:"departure_hour"` // "HH:MM"
	PriceCents     int64     `json:"price_cents"`
	RemainingSeats int       `json:"remaining_seats"`
}

// BookingOptions are the add-ons a caller may attach to a booking. They are
// priced server-side; the client never supplies a total.
type BookingOptions struct {
	ComfortSeat     bool   `json:"comfort_seat"`
	ElectricPlug    bool   `json:"electric_plug"`
	ExtraLuggage    bool   `json:"extra_luggage"`
	SMSBriefing     bool   `json:"sms_briefing"`
	TravelInsurance bool   `json:"travel_insurance"`
	MemberID        string `json:"member_id,omitempty"`
}

type Booking struct {
	ID         uuid.UUID     `json:"id"`
	UserEmail  string        `json:"user_email"`
	TrainID    int64         `json:"train_id"`
	Seats      int           `json:"seats"`
	TotalCents int64         `json:"total_cents"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

type BookingWithTrain struct {
	Booking
	Train Train `json:"train"`
}

type User struct {
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	Email         string `json:"email"`
	AccountNumber string `json:"account_number"`
}

type TrainAvailability struct {
	TrainID        int64 `json:"train_id"`
	RemainingSeats int   `json:"remaining_seats"`
}
