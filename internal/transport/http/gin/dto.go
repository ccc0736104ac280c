package httpgin

import (
	"time"

	"github.com/railgo/railgo/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Message       string `json:"message"`
	AccountNumber string `json:"account_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token         string `json:"token"`
	Email         string `json:"email"`
	AccountNumber string `json:"account_number"`
}

type BookingOptionsInput struct {
	ComfortSeat     bool   `json:"comfort_seat"`
	ElectricPlug    bool   `json:"electric_plug"`
	ExtraLuggage    bool   `json:"extra_luggage"`
	SMSBriefing     bool   `json:"sms_briefing"`
	TravelInsurance bool   `json:"travel_insurance"`
	MemberID        string `json:"member_id"`
}

type CreateBookingRequest struct {
	TrainID int64               `json:"train_id" binding:"required"`
	Seats   int                 `json:"seats" binding:"required,gte=1"`
	Options BookingOptionsInput `json:"options"`
}

type CreateTrainRequest struct {
	DepartureCity  string `json:"departure_city" binding:"required"`
	ArrivalCity    string `json:"arrival_city" binding:"required"`
	DepartureDate  string `json:"departure_date" binding:"required"`
	DepartureHour  string `json:"departure_hour" binding:"required"`
	PriceCents     int64  `json:"price_cents" binding:"required,gt=0"`
	RemainingSeats int    `json:"remaining_seats" binding:"gte=0"`
}

type BatchCreateTrainsRequest struct {
	Trains []CreateTrainRequest `json:"trains" binding:"required,min=1,dive"`
}

type CreateTrainResponse struct {
	TrainID int64 `json:"train_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (r CreateTrainRequest) toDomain() (domain.Train, error) {
	date, err := parseRFC3339(r.DepartureDate)
	if err != nil {
		return domain.Train{}, err
	}

	return domain.Train{
		DepartureCity:  r.DepartureCity,
		ArrivalCity:    r.ArrivalCity,
		DepartureDate:  date,
		DepartureHour:  r.DepartureHour,
		PriceCents:     r.PriceCents,
		RemainingSeats: r.RemainingSeats,
	}, nil
}

func (o BookingOptionsInput) toDomain() domain.BookingOptions {
	return domain.BookingOptions{
		ComfortSeat:     o.ComfortSeat,
		ElectricPlug:    o.ElectricPlug,
		ExtraLuggage:    o.ExtraLuggage,
		SMSBriefing:     o.SMSBriefing,
		TravelInsurance: o.TravelInsurance,
		MemberID:        o.MemberID,
	}
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// parseDay accepts a YYYY-MM-DD date query parameter.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
