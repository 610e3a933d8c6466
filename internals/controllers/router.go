package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-service/internals/middleware"
	"library-service/internals/service"
	"library-service/internals/validation"
)

// Deps holds everything the router needs, wired once at startup.
type Deps struct {
	Auth    *service.AuthService
	Books   *service.BookService
	Readers *service.ReaderService
	Loans   *service.LoanService
	Log     *logrus.Logger
}

// NewRouter builds the gin engine with all routes registered. Catalog and
// reader reads are public; every mutating route and the loan endpoints
// require a bearer token.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	authCtrl := NewAuthController(deps.Auth)
	validate := validation.New()
	booksCtrl := NewBooksController(deps.Books, validate)
	readersCtrl := NewReadersController(deps.Readers, validate)
	borrowsCtrl := NewBorrowsController(deps.Loans, validate)
	requireAuth := middleware.AuthenticateMiddleware(deps.Auth, deps.Log)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Library Management API"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.GET("/me", requireAuth, authCtrl.Me)
		auth.POST("/logout", requireAuth, authCtrl.Logout)
	}

	books := r.Group("/books")
	{
		books.GET("", booksCtrl.List)
		books.GET("/:id", booksCtrl.Get)
		books.POST("", requireAuth, booksCtrl.Create)
		books.PUT("/:id", requireAuth, booksCtrl.Update)
		books.DELETE("/:id", requireAuth, booksCtrl.Delete)
	}

	readers := r.Group("/readers")
	{
		readers.GET("", readersCtrl.List)
		readers.GET("/:id", readersCtrl.Get)
		readers.POST("", requireAuth, readersCtrl.Create)
		readers.PUT("/:id", requireAuth, readersCtrl.Update)
		readers.DELETE("/:id", requireAuth, readersCtrl.Delete)
	}

	borrows := r.Group("/borrows")
	borrows.Use(requireAuth)
	{
		borrows.POST("/borrow", borrowsCtrl.Borrow)
		borrows.POST("/return", borrowsCtrl.Return)
		borrows.GET("/reader/:id/borrowed", borrowsCtrl.ListForReader)
		borrows.GET("", borrowsCtrl.ListAll)
	}

	return r
}
