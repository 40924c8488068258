package db

import (
	"time"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	database *gorm.DB
}

func NewAttendanceRepository(database *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{database: database}
}

func (repo *AttendanceRepository) FindByID(recordID uint) (models.Attendance, error) {
	var record models.Attendance
	if err := repo.database.First(&record, recordID).Error; err != nil {
		return models.Attendance{}, err
	}
	return record, nil
}

// FindByUserAndDayRange locates the single record for a user within
// [dayStart, dayEnd).
func (repo *AttendanceRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.Attendance, bool, error) {
	var record models.Attendance
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.Attendance{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Attendance{}, false, nil
	}
	return record, true, nil
}

func (repo *AttendanceRepository) Create(record *models.Attendance) error {
	return repo.database.Create(record).Error
}

func (repo *AttendanceRepository) Save(record *models.Attendance) error {
	return repo.database.Save(record).Error
}

func (repo *AttendanceRepository) Delete(recordID uint) error {
	return repo.database.Delete(&models.Attendance{}, recordID).Error
}

func (repo *AttendanceRepository) List(params query.Params, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Attendance, int64, error) {
	var total int64
	if err := params.ApplyFilter(repo.database.Model(&models.Attendance{}).Scopes(scopes...)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	records := make([]models.Attendance, 0)
	if err := params.ApplyPage(params.ApplyFilter(repo.database.Model(&models.Attendance{}).Scopes(scopes...))).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (repo *AttendanceRepository) ListSince(since time.Time) ([]models.Attendance, error) {
	records := make([]models.Attendance, 0)
	if err := repo.database.
		Where("date >= ?", since).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *AttendanceRepository) CountByStatus(status models.AttendanceStatus) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Attendance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
