package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-service/internals/models"
	"library-service/internals/service"
)

type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func newUserResponse(user *models.UserModel) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, IsActive: user.IsActive}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	user, err := ctrl.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Login accepts either a JSON body {email, password} or OAuth2-style form
// data with username/password fields, where username carries the email.
func (ctrl *AuthController) Login(c *gin.Context) {
	var email, password string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}
		email, password = req.Email, req.Password
	} else {
		email = c.PostForm("username")
		password = c.PostForm("password")
	}

	token, err := ctrl.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	token := bearerToken(c)
	if err := ctrl.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// currentUser returns the account the auth middleware resolved, or nil.
func currentUser(c *gin.Context) *models.UserModel {
	value, exists := c.Get("currentUser")
	if !exists {
		return nil
	}
	user, ok := value.(*models.UserModel)
	if !ok {
		return nil
	}
	return user
}
