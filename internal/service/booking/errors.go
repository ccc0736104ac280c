package booking

import "errors"

var (
	ErrTrainNotFound     = errors.New("train not found")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrInvalidSeats      = errors.New("seats must be at least 1")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrRateLimited       = errors.New("rate limited")
)
