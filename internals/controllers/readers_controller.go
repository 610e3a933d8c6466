package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-service/internals/models"
	"library-service/internals/service"
	"library-service/internals/validation"
)

type ReadersController struct {
	readers  *service.ReaderService
	validate *validation.Validator
}

func NewReadersController(readers *service.ReaderService, validate *validation.Validator) *ReadersController {
	return &ReadersController{readers: readers, validate: validate}
}

type ReaderRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
}

type ReaderUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (ctrl *ReadersController) Create(c *gin.Context) {
	var req ReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	reader, err := ctrl.readers.Create(c.Request.Context(), &models.ReaderModel{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reader)
}

func (ctrl *ReadersController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reader, err := ctrl.readers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reader)
}

func (ctrl *ReadersController) List(c *gin.Context) {
	skip, limit := listParams(c)
	readers, err := ctrl.readers.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, readers)
}

func (ctrl *ReadersController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReaderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	if err := ctrl.validate.Struct(req); err != nil {
		respondError(c, err)
		return
	}
	updated, err := ctrl.readers.Update(c.Request.Context(), id, service.ReaderUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctrl *ReadersController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.readers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reader deleted successfully"})
}
