package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"invest_backoffice/internal/domain" // Importing domain models
	"invest_backoffice/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Username string `json:"username" binding:"required"`    // Username must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest is the credential payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched                                            // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// RegisterHandler creates a new account with a hashed password
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid request")
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Username must be alphabetic only")
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Password must be 8-15 characters")
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to hash password")
			return
		}
		// Create user with lowercase identifiers to ensure uniqueness
		user := domain.User{
			Email:    strings.ToLower(req.Email),    // Normalized email
			Username: strings.ToLower(req.Username), // Normalized username
			Password: string(hash),                  // Hashed password
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email/username), return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Email or username already exists")
			return
		}
		// Return success response
		respondOK(c, http.StatusCreated, "User registered successfully", nil)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid request")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			respondError(c, http.StatusUnauthorized, CodeValidationError, "Invalid credentials")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, CodeValidationError, "Invalid credentials")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to generate token")
			return
		}
		// Return the token in the response
		respondOK(c, http.StatusOK, "Login successful", gin.H{"token": token})
	}
}
