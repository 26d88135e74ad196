package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"carelink_backend_go/auth"
	"carelink_backend_go/models"
	"carelink_backend_go/storage"
	"carelink_backend_go/validators"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser handles POST /api/auth/register.
func RegisterUser(c *gin.Context, store storage.Store) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	errs := validators.Errors{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		errs.Add("name", "This field is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		errs.Add("email", "Enter a valid email address")
	}
	if req.Password != req.Password2 {
		errs.Add("password", "password fields didn't match.")
	} else if msg := validators.ValidatePassword(req.Password); msg != "" {
		errs.Add("password", msg)
	}
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hashedPassword),
	}
	if err := store.CreateUser(c, &user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "User with this email already exists"}})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    models.NewUserView(&user),
		"message": "User registered successfully",
	})
}

// LoginUser handles POST /api/auth/login. Unknown email and wrong password
// produce the same response so accounts cannot be enumerated.
func LoginUser(c *gin.Context, store storage.Store) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both email and password"})
		return
	}

	user, err := store.GetUserByEmail(c, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("Failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	access, refresh, err := auth.GenerateTokenPair(user.ID)
	if err != nil {
		log.Printf("Failed to generate tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    models.NewUserView(user),
		"access":  access,
		"refresh": refresh,
		"message": "Login successful",
	})
}

// RefreshToken handles POST /api/auth/refresh, exchanging a live refresh
// token for a fresh pair.
func RefreshToken(c *gin.Context, store storage.Store) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a refresh token"})
		return
	}

	userID, err := auth.ValidateToken(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	// The account must still exist for the token to be honored.
	if _, err := store.GetUserByID(c, userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	access, refresh, err := auth.GenerateTokenPair(userID)
	if err != nil {
		log.Printf("Failed to generate tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}
