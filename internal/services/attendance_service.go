package services

import (
	"errors"
	"math"
	"time"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

var (
	ErrAlreadyCheckedIn       = errors.New("already checked in for today")
	ErrAlreadyCheckedOut      = errors.New("already checked out for today")
	ErrCheckInNotFound        = errors.New("no check-in record found for today")
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAttendanceAccessDenied = errors.New("not authorized for this attendance record")
	ErrAttendanceUserNotFound = errors.New("user not found")
)

type AttendanceRepository interface {
	FindByID(recordID uint) (models.Attendance, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.Attendance, bool, error)
	Create(record *models.Attendance) error
	Save(record *models.Attendance) error
	Delete(recordID uint) error
	List(params query.Params, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Attendance, int64, error)
}

type AttendanceUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type AttendanceService struct {
	records  AttendanceRepository
	users    AttendanceUserReader
	location *time.Location
}

func NewAttendanceService(records AttendanceRepository, users AttendanceUserReader, location *time.Location) *AttendanceService {
	return &AttendanceService{records: records, users: users, location: location}
}

// AttendanceListSpec is the whitelist for attendance list queries.
var AttendanceListSpec = query.Spec{
	Columns: map[string]string{
		"user":       "user_id",
		"status":     "status",
		"date":       "date",
		"totalHours": "total_hours",
		"createdAt":  "created_at",
	},
	Sortable: map[string]string{
		"user":       "user_id",
		"status":     "status",
		"date":       "date",
		"totalHours": "total_hours",
		"createdAt":  "created_at",
	},
	DateColumn:  "date",
	DefaultSort: "date DESC",
}

func (service *AttendanceService) List(user *models.User, params query.Params) ([]models.Attendance, int64, error) {
	if !user.IsAdmin() {
		params.DropColumn("user_id")
	}
	return service.records.List(params, query.Scope(user, "user_id"))
}

// ListMine pins the owner predicate to the caller regardless of role.
func (service *AttendanceService) ListMine(userID uint, params query.Params) ([]models.Attendance, int64, error) {
	params.DropColumn("user_id")
	return service.records.List(params, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	})
}

// CheckIn creates today's record for the caller. The unique (user_id, date)
// index backstops concurrent attempts: the losing insert also surfaces as
// ErrAlreadyCheckedIn.
func (service *AttendanceService) CheckIn(userID uint, location *models.GeoPoint, notes string, now time.Time) (models.Attendance, error) {
	dayStart, dayEnd := DayRange(now, service.location)
	_, exists, err := service.records.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.Attendance{}, err
	}
	if exists {
		return models.Attendance{}, ErrAlreadyCheckedIn
	}

	checkInLocation := models.DefaultGeoPoint()
	if location != nil {
		checkInLocation = *location
	}
	record := models.Attendance{
		UserID: userID,
		Date:   dayStart,
		CheckIn: &models.CheckEvent{
			Time:     now,
			Location: checkInLocation,
			Notes:    notes,
		},
		Status: models.AttendancePresent,
	}
	if err := service.records.Create(&record); err != nil {
		return models.Attendance{}, ErrAlreadyCheckedIn
	}
	return record, nil
}

// CheckOut completes today's record and derives TotalHours.
func (service *AttendanceService) CheckOut(userID uint, location *models.GeoPoint, notes string, now time.Time) (models.Attendance, error) {
	dayStart, dayEnd := DayRange(now, service.location)
	record, exists, err := service.records.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.Attendance{}, err
	}
	if !exists {
		return models.Attendance{}, ErrCheckInNotFound
	}
	if record.CheckedOut() {
		return models.Attendance{}, ErrAlreadyCheckedOut
	}

	checkOutLocation := models.DefaultGeoPoint()
	if location != nil {
		checkOutLocation = *location
	}
	record.CheckOut = &models.CheckEvent{
		Time:     now,
		Location: checkOutLocation,
		Notes:    notes,
	}
	applyTotalHours(&record)
	if err := service.records.Save(&record); err != nil {
		return models.Attendance{}, err
	}
	return record, nil
}

// GetAuthorized loads a record visible to the caller: its owner or an admin.
func (service *AttendanceService) GetAuthorized(user *models.User, recordID uint) (models.Attendance, error) {
	record, err := service.records.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrAttendanceNotFound
		}
		return models.Attendance{}, err
	}
	if record.UserID != user.ID && !user.IsAdmin() {
		return models.Attendance{}, ErrAttendanceAccessDenied
	}
	return record, nil
}

// AttendanceUpdate is the admin-side partial update. User and Date together
// allow creating a record under a missing id.
type AttendanceUpdate struct {
	UserID   *uint                    `json:"user"`
	Date     *time.Time               `json:"date"`
	CheckIn  *models.CheckEvent       `json:"checkIn"`
	CheckOut *models.CheckEvent       `json:"checkOut"`
	Status   *models.AttendanceStatus `json:"status"`
	Comments *string                  `json:"comments"`
}

// AdminUpsert updates the record with the given id, or creates one when the
// id is unknown and the update names both user and date. The referenced user
// must exist. The returned bool reports creation.
func (service *AttendanceService) AdminUpsert(recordID uint, update AttendanceUpdate) (models.Attendance, bool, error) {
	record, err := service.records.FindByID(recordID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, false, err
		}
		if update.UserID == nil || update.Date == nil {
			return models.Attendance{}, false, ErrAttendanceNotFound
		}
		if _, err := service.users.FindByID(*update.UserID); err != nil {
			return models.Attendance{}, false, ErrAttendanceUserNotFound
		}

		record = models.Attendance{
			UserID:   *update.UserID,
			Date:     DateAtLocation(*update.Date, service.location),
			CheckIn:  update.CheckIn,
			CheckOut: update.CheckOut,
			Status:   models.AttendancePresent,
		}
		if update.Status != nil {
			record.Status = *update.Status
		}
		if update.Comments != nil {
			record.Comments = *update.Comments
		}
		applyTotalHours(&record)
		if err := service.records.Create(&record); err != nil {
			return models.Attendance{}, false, err
		}
		return record, true, nil
	}

	if update.UserID != nil && *update.UserID != record.UserID {
		if _, err := service.users.FindByID(*update.UserID); err != nil {
			return models.Attendance{}, false, ErrAttendanceUserNotFound
		}
		record.UserID = *update.UserID
	}
	if update.Date != nil {
		record.Date = DateAtLocation(*update.Date, service.location)
	}
	if update.CheckIn != nil {
		record.CheckIn = update.CheckIn
	}
	if update.CheckOut != nil {
		record.CheckOut = update.CheckOut
	}
	if update.Status != nil {
		record.Status = *update.Status
	}
	if update.Comments != nil {
		record.Comments = *update.Comments
	}
	applyTotalHours(&record)
	if err := service.records.Save(&record); err != nil {
		return models.Attendance{}, false, err
	}
	return record, false, nil
}

func (service *AttendanceService) Delete(recordID uint) error {
	if _, err := service.records.FindByID(recordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	return service.records.Delete(recordID)
}

// applyTotalHours recomputes the derived duration. It is set only when the
// checkout is strictly later than the checkin, rounded to two decimals.
func applyTotalHours(record *models.Attendance) {
	if record.CheckIn == nil || record.CheckIn.Time.IsZero() || !record.CheckedOut() {
		return
	}
	elapsed := record.CheckOut.Time.Sub(record.CheckIn.Time)
	if elapsed <= 0 {
		return
	}
	record.TotalHours = math.Round(elapsed.Hours()*100) / 100
}
