package models

import "time"

// ReaderModel is a library patron. Readers are not API users; they never log
// in, they only appear as the borrowing side of a loan.
type ReaderModel struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);unique;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}

func (ReaderModel) TableName() string { return "readers" }
