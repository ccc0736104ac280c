package booking

import (
	"strings"

	"github.com/railgo/railgo/internal/domain"
)

// Add-on prices in cents, applied once per booking.
const (
	centsComfortSeat     = 299
	centsElectricPlug    = 199
	centsExtraLuggage    = 499
	centsSMSBriefing     = 99
	centsTravelInsurance = 299
)

const memberAccountPrefix = "ACC"

// ComputeTotalCents is the authoritative price: unit price times seats, plus
// selected add-ons, minus a 10% member discount when a valid member account
// number is supplied. The client-side preview is never trusted.
func ComputeTotalCents(priceCents int64, seats int, opts domain.BookingOptions) int64 {
	total := priceCents * int64(seats)

	if opts.ComfortSeat {
		total += centsComfortSeat
	}
	if opts.ElectricPlug {
		total += centsElectricPlug
	}
	if opts.ExtraLuggage {
		total += centsExtraLuggage
	}
	if opts.SMSBriefing {
		total += centsSMSBriefing
	}
	if opts.TravelInsurance {
		total += centsTravelInsurance
	}

	if strings.HasPrefix(opts.MemberID, memberAccountPrefix) {
		total = total * 90 / 100
	}

	return total
}
