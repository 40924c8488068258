package db

import (
	"strings"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", normalizeEmail(email)).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ExistsByNormalizedEmailExcluding(email string, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ? AND id <> ?", normalizeEmail(email), userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

// Deactivate is the delete operation for accounts: users are never removed,
// only switched inactive.
func (repo *UserRepository) Deactivate(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false).Error
}

func (repo *UserRepository) List(params query.Params) ([]models.User, int64, error) {
	var total int64
	if err := params.ApplyFilter(repo.database.Model(&models.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]models.User, 0)
	if err := params.ApplyPage(params.ApplyFilter(repo.database.Model(&models.User{}))).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SummariesByID loads the trimmed owner payloads for the given user ids.
func (repo *UserRepository) SummariesByID(userIDs []uint) (map[uint]models.UserSummary, error) {
	summaries := make(map[uint]models.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	users := make([]models.User, 0, len(userIDs))
	if err := repo.database.
		Select("id", "name", "email", "role").
		Where("id IN ?", userIDs).
		Find(&users).Error; err != nil {
		return nil, err
	}
	for index := range users {
		summaries[users[index].ID] = users[index].Summary()
	}
	return summaries, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
