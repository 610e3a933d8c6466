package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-service/internals/models"
	"library-service/internals/service"
	"library-service/internals/validation"
)

type BooksController struct {
	books    *service.BookService
	validate *validation.Validator
}

func NewBooksController(books *service.BookService, validate *validation.Validator) *BooksController {
	return &BooksController{books: books, validate: validate}
}

type BookRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Author      string  `json:"author" validate:"required,max=255"`
	Year        *int    `json:"year" validate:"omitempty,gte=0"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=20"`
	Copies      *int    `json:"copies" validate:"omitempty,gte=0"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

type BookUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Author      *string `json:"author" validate:"omitempty,max=255"`
	Year        *int    `json:"year" validate:"omitempty,gte=0"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=20"`
	Copies      *int    `json:"copies" validate:"omitempty,gte=0"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

func (ctrl *BooksController) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	book := &models.BookModel{
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		ISBN:        req.ISBN,
		Copies:      1,
		Description: req.Description,
	}
	if req.Copies != nil {
		book.Copies = *req.Copies
	}
	created, err := ctrl.books.Create(c.Request.Context(), book)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (ctrl *BooksController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, err := ctrl.books.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (ctrl *BooksController) List(c *gin.Context) {
	skip, limit := listParams(c)
	books, err := ctrl.books.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req BookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	updated, err := ctrl.books.Update(c.Request.Context(), id, service.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		ISBN:        req.ISBN,
		Copies:      req.Copies,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// pathID parses the numeric id path parameter; on failure it writes the 404
// itself and reports ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// listParams reads skip/limit pagination query params with the API defaults.
func listParams(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	return skip, limit
}
