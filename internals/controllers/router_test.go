package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"library-service/internals/models"
	"library-service/internals/repository"
	"library-service/internals/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "api_test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BookModel{},
		&models.ReaderModel{},
		&models.LoanModel{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := repository.NewUserRepository(db)
	books := repository.NewBookRepository(db)
	readers := repository.NewReaderRepository(db)
	loans := repository.NewLoanRepository(db)

	return NewRouter(Deps{
		Auth:    service.NewAuthService(users, "test-secret", 30*time.Minute, log),
		Books:   service.NewBookService(books, loans, log),
		Readers: service.NewReaderService(readers, loans, log),
		Loans:   service.NewLoanService(db, loans, readers, nil, log),
		Log:     log,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "admin@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createBookHTTP(t *testing.T, r *gin.Engine, token string, copies int, isbn string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/books", token, gin.H{
		"title":  "Test Book",
		"author": "Test Author",
		"copies": copies,
		"isbn":   isbn,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return uint(decodeBody(t, w)["id"].(float64))
}

func createReaderHTTP(t *testing.T, r *gin.Engine, token, email string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/readers", token, gin.H{
		"name":  "Test Reader",
		"email": email,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return uint(decodeBody(t, w)["id"].(float64))
}

func TestWelcomeRoute(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Library Management API")
}

func TestRegisterDuplicateReturns400(t *testing.T) {
	r := newTestRouter(t)
	payload := gin.H{"email": "dup@example.com", "password": "password123"}

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestRegisterWeakPasswordReturns422(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "weak@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Detail []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Detail)
	assert.Equal(t, "password", body.Detail[0].Field)
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "wrongpass99",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// The login route also accepts OAuth2-style form data with a username field.
func TestLoginFormEncoded(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r)

	form := url.Values{}
	form.Set("username", "admin@example.com")
	form.Set("password", "password123")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestMeRequiresToken(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "admin@example.com", body["email"])
	assert.Equal(t, true, body["is_active"])
}

func TestBookWritesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/books", "", gin.H{
		"title": "Nope", "author": "Nobody",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reads stay public
	w = doJSON(t, r, http.MethodGet, "/books", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookCRUDOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	bookID := createBookHTTP(t, r, token, 2, "9780000000001")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/books/%d", bookID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/books/%d", bookID), token, gin.H{"copies": 7})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, decodeBody(t, w)["copies"])

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/books/%d", bookID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/books/%d", bookID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookDuplicateISBNReturns400(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	createBookHTTP(t, r, token, 1, "9780000000001")

	w := doJSON(t, r, http.MethodPost, "/books", token, gin.H{
		"title": "Copycat", "author": "Anon", "isbn": "9780000000001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ISBN already exists")
}

func TestBorrowAndReturnFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	bookID := createBookHTTP(t, r, token, 1, "9780000000001")
	readerID := createReaderHTTP(t, r, token, "reader@example.com")

	w := doJSON(t, r, http.MethodPost, "/borrows/borrow", token, gin.H{
		"book_id": bookID, "reader_id": readerID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Book borrowed successfully", body["message"])
	assert.NotNil(t, body["borrow_id"])

	// the only copy is out
	other := createReaderHTTP(t, r, token, "other@example.com")
	w = doJSON(t, r, http.MethodPost, "/borrows/borrow", token, gin.H{
		"book_id": bookID, "reader_id": other,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No available copies")

	// deleting a borrowed book is refused
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/books/%d", bookID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/borrows/return", token, gin.H{
		"book_id": bookID, "reader_id": readerID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book returned successfully", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/borrows/return", token, gin.H{
		"book_id": bookID, "reader_id": readerID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not borrowed")
}

func TestBorrowMissingBookReturns404(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	readerID := createReaderHTTP(t, r, token, "reader@example.com")

	w := doJSON(t, r, http.MethodPost, "/borrows/borrow", token, gin.H{
		"book_id": 9999, "reader_id": readerID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBorrowedForReader(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	bookID := createBookHTTP(t, r, token, 1, "9780000000001")
	readerID := createReaderHTTP(t, r, token, "reader@example.com")

	w := doJSON(t, r, http.MethodPost, "/borrows/borrow", token, gin.H{
		"book_id": bookID, "reader_id": readerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/borrows/reader/%d/borrowed", readerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loans []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loans))
	require.Len(t, loans, 1)
	assert.EqualValues(t, bookID, loans[0]["book_id"])
	assert.Equal(t, false, loans[0]["returned"])

	w = doJSON(t, r, http.MethodGet, "/borrows/reader/9999/borrowed", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReaderDeleteBlockedOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)
	bookID := createBookHTTP(t, r, token, 1, "9780000000001")
	readerID := createReaderHTTP(t, r, token, "reader@example.com")

	w := doJSON(t, r, http.MethodPost, "/borrows/borrow", token, gin.H{
		"book_id": bookID, "reader_id": readerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/readers/%d", readerID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete reader")
}

func TestLogout(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully logged out")
}
