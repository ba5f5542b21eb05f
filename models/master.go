package models

import "time"

// Master is a bookable resource: a salon master identified by an integer id.
type Master struct {
	ID        int       `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// BookedSlot is a claim on one (master, date, time) unit. At most one exists per unit.
type BookedSlot struct {
	ID        int64     `bson:"id" json:"id"`
	MasterID  int       `bson:"masterId" json:"master_id"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string    `bson:"time" json:"time"` // HH:MM
	ClientID  int       `bson:"clientId" json:"client_id"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Schedule is the availability of one master on one date.
type Schedule struct {
	MasterID       int      `json:"master_id"`
	MasterName     string   `json:"master_name"`
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
	BookedTimes    []string `json:"booked_times"`
	AllSlots       []string `json:"all_slots"`
}

// IsAvailable reports whether t is among the schedule's free times.
func (s *Schedule) IsAvailable(t string) bool {
	if s == nil {
		return false
	}
	for _, a := range s.AvailableTimes {
		if a == t {
			return true
		}
	}
	return false
}

// MasterVisit is the master-side log of a client visit.
type MasterVisit struct {
	ID         int64     `bson:"id" json:"id"`
	MasterID   int       `bson:"masterId" json:"master_id"`
	ClientID   int       `bson:"clientId" json:"client_id"`
	ClientName string    `bson:"clientName" json:"client_name"`
	Date       string    `bson:"date" json:"date"`
	Time       string    `bson:"time" json:"time"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}
