package models

import "time"

// BookModel holds catalog data for one title. Copies counts the copies
// currently on the shelf: each successful borrow decrements it, each return
// increments it, and it never goes below zero.
type BookModel struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Author      string    `gorm:"column:author;type:varchar(255);not null" json:"author"`
	Year        *int      `gorm:"column:year" json:"year"`
	ISBN        *string   `gorm:"column:isbn;type:varchar(20);unique" json:"isbn"`
	Copies      int       `gorm:"column:copies;not null;default:1" json:"copies"`
	Description *string   `gorm:"column:description;type:varchar(1024)" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at" json:"-"`
}

func (BookModel) TableName() string { return "books" }
