package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Clients     *ClientRepository
	Attendances *AttendanceRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Clients:     NewClientRepository(database),
		Attendances: NewAttendanceRepository(database),
	}
}
