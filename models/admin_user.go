package models

import "time"

// AdminUser is a dashboard account. There is no public registration; accounts
// are seeded at startup or created with the createadmin command.
type AdminUser struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string `gorm:"size:255;not null;unique"`
	HashedPassword []byte `gorm:"not null"`
}
