package models

import "time"

// BookingRequest is what a client submits to book a slot.
type BookingRequest struct {
	ClaimantID int
	MasterID   int
	Date       string
	Time       string
}

// SlotClaim identifies a reserved unit and who holds it.
type SlotClaim struct {
	ClaimantID int    `json:"claimant_id"`
	MasterID   int    `json:"master_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// Booking is a confirmed booking record owned by the confirmation service.
type Booking struct {
	ID         int64     `bson:"id" json:"id"`
	UserID     int       `bson:"userId" json:"user_id"`
	UserName   string    `bson:"userName" json:"user"`
	MasterID   int       `bson:"masterId" json:"master_id"`
	MasterName string    `bson:"masterName" json:"master"`
	Date       string    `bson:"date" json:"date"`
	Time       string    `bson:"time" json:"time"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

// ConfirmRequest asks the confirmation service to persist a booking.
type ConfirmRequest struct {
	UserID     int    `json:"user_id"`
	MasterID   int    `json:"master_id"`
	MasterName string `json:"master_name,omitempty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// ConfirmResult is the confirmation service's answer.
type ConfirmResult struct {
	BookingID int64    `json:"booking_id"`
	Booking   *Booking `json:"booking"`
}

// AlternativeDate is a later date on which the requested time is free.
type AlternativeDate struct {
	Date      string `json:"date"`
	DayOfWeek int    `json:"day_of_week"` // Monday = 0
	Formatted string `json:"formatted"`
}

// Alternatives holds at most one non-empty list.
type Alternatives struct {
	Times []string
	Dates []AlternativeDate
}

// Empty reports whether no alternative was found.
func (a Alternatives) Empty() bool {
	return len(a.Times) == 0 && len(a.Dates) == 0
}

// BookingOutcome is the result of a booking attempt that reached a decision.
type BookingOutcome struct {
	Confirmed    bool
	BookingID    int64
	Booking      *Booking
	MasterName   string
	Alternatives Alternatives
}

// AvailabilityCheck answers whether one unit is free.
type AvailabilityCheck struct {
	Available  bool   `json:"available"`
	MasterID   int    `json:"master_id"`
	MasterName string `json:"master_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// DayAvailability summarizes one date in a multi-day availability view.
type DayAvailability struct {
	Available      bool     `json:"available"`
	AvailableSlots []string `json:"available_slots"`
	DayOfWeek      int      `json:"day_of_week"`
	FormattedDate  string   `json:"formatted_date"`
}

// MasterAvailability is the next few days of a master's schedule.
type MasterAvailability struct {
	MasterID      int                        `json:"master_id"`
	MasterName    string                     `json:"master_name"`
	Availability  map[string]DayAvailability `json:"availability"`
	NextAvailable *string                    `json:"next_available"`
}
