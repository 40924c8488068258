package models

import "time"

// AttendanceStatus is the closed set of day statuses.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendanceHalfDay AttendanceStatus = "half-day"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave, AttendanceHalfDay:
		return true
	}
	return false
}

// GeoPoint mirrors a GeoJSON point. The zero location is [0,0].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func DefaultGeoPoint() GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{0, 0}}
}

// CheckEvent is one side of an attendance day: the check-in or check-out.
type CheckEvent struct {
	Time     time.Time `json:"time"`
	Location GeoPoint  `json:"location"`
	Notes    string    `json:"notes,omitempty"`
}

// Attendance is one record per user and calendar day. Date always holds the
// start of the day; the (user_id, date) unique index is what serializes
// concurrent check-ins into one winner.
type Attendance struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;uniqueIndex:uidx_attendance_user_date" json:"user"`
	Date       time.Time        `gorm:"not null;uniqueIndex:uidx_attendance_user_date;index" json:"date"`
	CheckIn    *CheckEvent      `gorm:"serializer:json" json:"checkIn,omitempty"`
	CheckOut   *CheckEvent      `gorm:"serializer:json" json:"checkOut,omitempty"`
	TotalHours float64          `json:"totalHours,omitempty"`
	Status     AttendanceStatus `gorm:"not null;default:present" json:"status"`
	Comments   string           `json:"comments,omitempty"`
	CreatedAt  time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// CheckedOut reports whether the record already carries a check-out time.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOut != nil && !a.CheckOut.Time.IsZero()
}
