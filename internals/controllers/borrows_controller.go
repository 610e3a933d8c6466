package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-service/internals/service"
	"library-service/internals/validation"
)

type BorrowsController struct {
	loans    *service.LoanService
	validate *validation.Validator
}

func NewBorrowsController(loans *service.LoanService, validate *validation.Validator) *BorrowsController {
	return &BorrowsController{loans: loans, validate: validate}
}

type BorrowRequest struct {
	BookID   uint `json:"book_id" validate:"required"`
	ReaderID uint `json:"reader_id" validate:"required"`
}

func (ctrl *BorrowsController) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	loan, err := ctrl.loans.Borrow(c.Request.Context(), req.BookID, req.ReaderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Book borrowed successfully",
		"borrow_id": loan.ID,
	})
}

func (ctrl *BorrowsController) Return(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.loans.Return(c.Request.Context(), req.BookID, req.ReaderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book returned successfully"})
}

func (ctrl *BorrowsController) ListForReader(c *gin.Context) {
	readerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	loans, err := ctrl.loans.ListOpenForReader(c.Request.Context(), readerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (ctrl *BorrowsController) ListAll(c *gin.Context) {
	loans, err := ctrl.loans.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}
