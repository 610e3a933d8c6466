package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"library-service/internals/apperrors"
	"library-service/internals/models"
	"library-service/internals/repository"
)

// BookService is catalog CRUD. It enforces ISBN uniqueness and refuses to
// delete a book that still has an open loan; it deliberately does not
// reconcile direct copy-count updates against the ledger (see DESIGN.md).
type BookService struct {
	books repository.BookRepository
	loans repository.LoanRepository
	log   *logrus.Logger
}

func NewBookService(books repository.BookRepository, loans repository.LoanRepository, log *logrus.Logger) *BookService {
	return &BookService{books: books, loans: loans, log: log}
}

// BookUpdate carries a partial update; nil fields are left unchanged.
type BookUpdate struct {
	Title       *string
	Author      *string
	Year        *int
	ISBN        *string
	Copies      *int
	Description *string
}

func (s *BookService) Create(ctx context.Context, book *models.BookModel) (*models.BookModel, error) {
	if book.ISBN != nil && *book.ISBN != "" {
		if _, err := s.books.FindByISBN(ctx, *book.ISBN); err == nil {
			return nil, apperrors.Conflict("Book with this ISBN already exists")
		} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, err
		}
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.log.WithField("book_id", book.ID).Info("created book")
	return book, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*models.BookModel, error) {
	return s.books.FindById(ctx, id)
}

func (s *BookService) List(ctx context.Context, skip, limit int) ([]models.BookModel, error) {
	return s.books.FindAll(ctx, skip, limit)
}

func (s *BookService) Update(ctx context.Context, id uint, update BookUpdate) (*models.BookModel, error) {
	book, err := s.books.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.ISBN != nil && (book.ISBN == nil || *update.ISBN != *book.ISBN) {
		if _, err := s.books.FindByISBN(ctx, *update.ISBN); err == nil {
			return nil, apperrors.Conflict("Book with this ISBN already exists")
		} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, err
		}
	}
	if update.Title != nil {
		book.Title = *update.Title
	}
	if update.Author != nil {
		book.Author = *update.Author
	}
	if update.Year != nil {
		book.Year = update.Year
	}
	if update.ISBN != nil {
		book.ISBN = update.ISBN
	}
	if update.Copies != nil {
		book.Copies = *update.Copies
	}
	if update.Description != nil {
		book.Description = update.Description
	}
	if err := s.books.Save(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) error {
	book, err := s.books.FindById(ctx, id)
	if err != nil {
		return err
	}
	openLoans, err := s.loans.CountOpenByBook(ctx, id)
	if err != nil {
		return err
	}
	if openLoans > 0 {
		return apperrors.Conflict("Cannot delete book that is currently borrowed")
	}
	if err := s.books.Delete(ctx, book); err != nil {
		return err
	}
	s.log.WithField("book_id", id).Info("deleted book")
	return nil
}
