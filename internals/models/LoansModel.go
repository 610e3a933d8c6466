package models

import "time"

// LoanModel records one book copy held by one reader. A loan is open while
// Returned is false; at most one open loan may exist per (book, reader) pair,
// and a reader may hold at most three open loans at once. Loans are never
// deleted, returning only closes them.
type LoanModel struct {
	ID         uint       `gorm:"primaryKey;column:id" json:"id"`
	BookID     uint       `gorm:"column:book_id;not null;index:idx_loans_pair" json:"book_id"`
	ReaderID   uint       `gorm:"column:reader_id;not null;index:idx_loans_pair" json:"reader_id"`
	BorrowDate time.Time  `gorm:"column:borrow_date;not null" json:"borrow_date"`
	ReturnDate *time.Time `gorm:"column:return_date" json:"return_date"`
	Returned   bool       `gorm:"column:returned;not null;default:false;index:idx_loans_pair" json:"returned"`

	Book   BookModel   `gorm:"foreignKey:BookID" json:"-"`
	Reader ReaderModel `gorm:"foreignKey:ReaderID" json:"-"`
}

func (LoanModel) TableName() string { return "loans" }
