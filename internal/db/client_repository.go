package db

import (
	"time"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

type ClientRepository struct {
	database *gorm.DB
}

func NewClientRepository(database *gorm.DB) *ClientRepository {
	return &ClientRepository{database: database}
}

func (repo *ClientRepository) FindByID(clientID uint) (models.Client, error) {
	var client models.Client
	if err := repo.database.First(&client, clientID).Error; err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (repo *ClientRepository) Create(client *models.Client) error {
	return repo.database.Create(client).Error
}

func (repo *ClientRepository) Save(client *models.Client) error {
	return repo.database.Save(client).Error
}

func (repo *ClientRepository) Delete(clientID uint) error {
	return repo.database.Delete(&models.Client{}, clientID).Error
}

// List fetches one page plus the unpaginated total for the same filter.
// Scopes compose before the caller-supplied filter.
func (repo *ClientRepository) List(params query.Params, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, int64, error) {
	var total int64
	if err := params.ApplyFilter(repo.database.Model(&models.Client{}).Scopes(scopes...)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]models.Client, 0)
	if err := params.ApplyPage(params.ApplyFilter(repo.database.Model(&models.Client{}).Scopes(scopes...))).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// ListByNextContact returns clients whose follow-up date falls inside
// [from, to); until is exclusive so a day range never catches the next day's
// midnight.
func (repo *ClientRepository) ListByNextContact(from time.Time, until time.Time, orderBy string, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := repo.database.Model(&models.Client{}).Scopes(scopes...).
		Where("next_contact_at >= ? AND next_contact_at < ?", from, until).
		Order(orderBy).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (repo *ClientRepository) CountAll(scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Client{}).Scopes(scopes...).Count(&count).Error
	return count, err
}

func (repo *ClientRepository) CountByStatus(status models.ClientStatus) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Client{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (repo *ClientRepository) CountCreatedBetween(from time.Time, until time.Time, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Client{}).Scopes(scopes...).
		Where("created_at >= ? AND created_at < ?", from, until).
		Count(&count).Error
	return count, err
}

func (repo *ClientRepository) CountByNextContactRange(from time.Time, until time.Time, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Client{}).Scopes(scopes...).
		Where("next_contact_at >= ? AND next_contact_at < ?", from, until).
		Count(&count).Error
	return count, err
}

func (repo *ClientRepository) GroupCountByAssignee() ([]models.AssigneeCount, error) {
	rows := make([]models.AssigneeCount, 0)
	if err := repo.database.Model(&models.Client{}).
		Select("users.name AS team_member, COUNT(clients.id) AS count").
		Joins("JOIN users ON users.id = clients.assigned_to").
		Group("clients.assigned_to").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCreatedSince loads the creation timestamps needed for time bucketing.
func (repo *ClientRepository) ListCreatedSince(since time.Time) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := repo.database.
		Select("id", "created_at").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// ListWithSubEntries loads the columns needed for folding interaction and
// feedback analytics in memory.
func (repo *ClientRepository) ListWithSubEntries(scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := repo.database.Model(&models.Client{}).Scopes(scopes...).
		Select("id", "name", "assigned_to", "interactions", "feedback").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
