package models

import "time"

// UserModel is a service account used to authenticate API calls. The password
// is stored as a bcrypt hash only; there is no delete path for accounts,
// deactivation flips IsActive instead.
type UserModel struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	Email          string    `gorm:"column:email;type:varchar(255);unique;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(128);not null" json:"-"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}

func (UserModel) TableName() string { return "users" }
