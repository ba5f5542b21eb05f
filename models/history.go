package models

import "time"

// Session statuses.
const (
	SessionPending   = "pending"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// ValidSessionStatus reports whether s is a known session status.
func ValidSessionStatus(s string) bool {
	return s == SessionPending || s == SessionCompleted || s == SessionCancelled
}

// SessionRecord is one booked session in a user's history.
type SessionRecord struct {
	ID          int64     `bson:"id" json:"id"`
	UserID      int       `bson:"userId" json:"user_id"`
	UserName    string    `bson:"userName" json:"user_name"`
	MasterID    int       `bson:"masterId" json:"master_id"`
	MasterName  string    `bson:"masterName" json:"master_name"`
	Date        string    `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"`
	SessionDate time.Time `bson:"sessionDate" json:"session_date"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updated_at"`
}

// VisitRecord is a visit that took place; recommendations are derived from these.
type VisitRecord struct {
	ID         int64     `bson:"id" json:"id"`
	UserID     int       `bson:"userId" json:"user_id"`
	MasterID   int       `bson:"masterId" json:"master_id"`
	MasterName string    `bson:"masterName" json:"master_name"`
	Date       string    `bson:"date" json:"date"`
	Time       string    `bson:"time" json:"time"`
	DayOfWeek  int       `bson:"dayOfWeek" json:"day_of_week"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

// SessionRequest records a new session or a completed visit.
type SessionRequest struct {
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	MasterID   int    `json:"master_id"`
	MasterName string `json:"master_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
}

// Recommendation suggests a follow-up booking.
type Recommendation struct {
	MasterID   int    `json:"master_id"`
	MasterName string `json:"master_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Message    string `json:"message"`
}
