package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library-service/internals/apperrors"
	"library-service/internals/models"
	"library-service/internals/repository"
)

func newBookService(db *gorm.DB) *BookService {
	return NewBookService(repository.NewBookRepository(db), repository.NewLoanRepository(db), newTestLogger())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	created, err := svc.Create(context.Background(), &models.BookModel{
		Title:  "Dune",
		Author: "Frank Herbert",
		Year:   intPtr(1965),
		ISBN:   strPtr("9780441013593"),
		Copies: 3,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 3, got.Copies)
}

func TestBookCreateDuplicateISBN(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	_, err := svc.Create(context.Background(), &models.BookModel{
		Title: "Dune", Author: "Frank Herbert", ISBN: strPtr("9780441013593"), Copies: 1,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.BookModel{
		Title: "Dune Again", Author: "Someone", ISBN: strPtr("9780441013593"), Copies: 1,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestBookUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	book, err := svc.Create(context.Background(), &models.BookModel{
		Title: "Dune", Author: "Frank Herbert", Copies: 3,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), book.ID, BookUpdate{
		Copies:      intPtr(10),
		Description: strPtr("restocked"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, 10, updated.Copies)
	require.NotNil(t, updated.Description)
}

func TestBookUpdateISBNConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	_, err := svc.Create(context.Background(), &models.BookModel{
		Title: "First", Author: "A", ISBN: strPtr("1111111111"), Copies: 1,
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &models.BookModel{
		Title: "Second", Author: "B", ISBN: strPtr("2222222222"), Copies: 1,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, BookUpdate{ISBN: strPtr("1111111111")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// setting the same ISBN the book already has is a no-op, not a conflict
	_, err = svc.Update(context.Background(), second.ID, BookUpdate{ISBN: strPtr("2222222222")})
	assert.NoError(t, err)
}

func TestBookUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	_, err := svc.Update(context.Background(), 9999, BookUpdate{Title: strPtr("x")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

// Scenario D: delete is blocked by an open loan and allowed after return.
func TestBookDeleteBlockedByOpenLoan(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)
	loanSvc := newLoanService(db)

	book, err := svc.Create(context.Background(), &models.BookModel{
		Title: "Dune", Author: "Frank Herbert", Copies: 1,
	})
	require.NoError(t, err)
	reader := createTestReader(t, db, "Paul", "paul@example.com")

	_, err = loanSvc.Borrow(context.Background(), book.ID, reader.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), book.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	require.NoError(t, loanSvc.Return(context.Background(), book.ID, reader.ID))
	require.NoError(t, svc.Delete(context.Background(), book.ID))

	_, err = svc.Get(context.Background(), book.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBookListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(db)

	for i := 0; i < 5; i++ {
		createTestBook(t, db, "Book", 1)
	}

	all, err := svc.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	page, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
