package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/XCLUSIIVE05/cashapp/internal/auth"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
)

// SignupRequest carries the identity fields for a new account.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Cashtag  string `json:"cashtag" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the session token.
type AuthResponse struct {
	Token string `json:"token"`
}

var cashtagPattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// isValidCashtag checks the handle format: lowercase alphanumerics and
// underscores, 3-20 characters, without the leading $.
func isValidCashtag(cashtag string) bool {
	return cashtagPattern.MatchString(cashtag)
}

// isValidPassword checks if the password length is between 8 and 64 characters.
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64
}

// SignupHandler registers a new user and their bitcoin wallet.
func SignupHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidCashtag(req.Cashtag) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cashtag must be 3-20 lowercase letters, digits or underscores"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		user, err := eng.Accounts.CreateUser(
			c.Request.Context(),
			req.Username,
			strings.ToLower(req.Email),
			req.Cashtag,
			req.Password,
		)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user_id": user.ID,
			"cashtag": user.Cashtag,
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token.
func LoginHandler(eng *service.Engine, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := eng.Accounts.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
		if err != nil || !eng.Accounts.VerifyCredential(user, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := auth.GenerateToken(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
