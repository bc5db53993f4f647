package usecase

import (
	"strconv"
	"strings"

	"rental-service/internal/domain/entity"
)

// JoinBookings attaches guest details to each booking. It returns exactly one row per
// booking, in input order; bookings without a matching guest get placeholder values.
func JoinBookings(bookings []entity.Booking, guests []entity.Guest) []entity.TransformedBooking {
	// later duplicates win
	byID := make(map[int64]*entity.Guest, len(guests))
	for i := range guests {
		byID[guests[i].ID] = &guests[i]
	}

	rows := make([]entity.TransformedBooking, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, transformBooking(b, byID[b.GuestID]))
	}
	return rows
}

func transformBooking(b entity.Booking, guest *entity.Guest) entity.TransformedBooking {
	row := entity.TransformedBooking{
		ID:           strconv.FormatInt(b.ID, 10),
		PersonName:   entity.NotAvailable,
		Email:        PrimaryEmail(guest),
		Phone:        PrimaryPhone(guest),
		PropertyName: entity.NotAvailable,
		Status:       b.Status,
		ApplyDate:    applyDate(b.CreatedUTC),
		Price:        formatPrice(b.TotalAmount),
		Arrival:      b.Arrival,
		Departure:    b.Departure,
		CreatedUTC:   b.CreatedUTC,
		UpdatedUTC:   b.UpdatedUTC,
		GuestID:      b.GuestID,
		PropertyID:   b.PropertyID,
		Guest:        guest,
	}

	if guest != nil {
		row.PersonName = guest.FirstName + " " + guest.LastName
	}
	if b.Property != nil && b.Property.Name != "" {
		row.PropertyName = b.Property.Name
	}
	if row.Status == "" {
		row.Status = entity.DefaultBookingStatus
	}

	return row
}

// PrimaryEmail returns the default address, else the first address, else "N/A"
func PrimaryEmail(guest *entity.Guest) string {
	if guest == nil {
		return entity.NotAvailable
	}
	for _, e := range guest.EmailAddresses {
		if e.IsDefault {
			if e.Address != "" {
				return e.Address
			}
			break
		}
	}
	if len(guest.EmailAddresses) > 0 && guest.EmailAddresses[0].Address != "" {
		return guest.EmailAddresses[0].Address
	}
	return entity.NotAvailable
}

// PrimaryPhone returns the default number, else the first number, else "N/A"
func PrimaryPhone(guest *entity.Guest) string {
	if guest == nil {
		return entity.NotAvailable
	}
	for _, p := range guest.Phones {
		if p.IsDefault {
			if p.Number != "" {
				return p.Number
			}
			break
		}
	}
	if len(guest.Phones) > 0 && guest.Phones[0].Number != "" {
		return guest.Phones[0].Number
	}
	return entity.NotAvailable
}

func applyDate(createdUTC string) string {
	if createdUTC == "" {
		return ""
	}
	date, _, _ := strings.Cut(createdUTC, "T")
	return date
}

// formatPrice renders a zero or missing amount as "N/A"
func formatPrice(amount *float64) string {
	if amount == nil || *amount == 0 {
		return entity.NotAvailable
	}
	return "$" + strconv.FormatFloat(*amount, 'f', -1, 64)
}
