package httpapi

import (
	"errors"
	"net/http"

	"github.com/dkalnins/auctionhub/internal/common"
	"github.com/dkalnins/auctionhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

// User-facing messages. Duplicate email/username get distinct messages;
// bad credentials deliberately share one generic message.
const (
	msgMissingFields    = "Please provide all required fields"
	msgPasswordTooShort = "Password must be at least 6 characters long"
	msgUsernameTooShort = "Username must be at least 3 characters long"
	msgInvalidEmail     = "Please provide a valid email address"
	msgEmailTaken       = "Email already registered"
	msgUsernameTaken    = "Username already taken"
	msgMissingLogin     = "Please provide username/email and password"
	msgInvalidCreds     = "Invalid credentials"
	msgRegistered       = "User registered successfully"
	msgLoggedIn         = "Login successful"
	msgUserNotFound     = "User not found"
	msgRegisterError    = "Server error during registration"
	msgLoginError       = "Server error during login"
	msgProfileError     = "Server error retrieving user data"
)

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// registerUser handles POST /auth/register.
func (s *Server) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(msgMissingFields))
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.FullName, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, fail(msgPasswordTooShort))
		case errors.Is(err, common.ErrUsernameTooShort):
			c.JSON(http.StatusBadRequest, fail(msgUsernameTooShort))
		case errors.Is(err, common.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, fail(msgInvalidEmail))
		case errors.Is(err, common.ErrValidation):
			c.JSON(http.StatusBadRequest, fail(msgMissingFields))
		case errors.Is(err, common.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, fail(msgEmailTaken))
		case errors.Is(err, common.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, fail(msgUsernameTaken))
		default:
			s.logger.Error(c.Request.Context(), "registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, fail(msgRegisterError))
		}
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: msgRegistered,
		Data:    registerData(user, token),
	})
}

// loginUser handles POST /auth/login.
func (s *Server) loginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail(msgMissingLogin))
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			c.JSON(http.StatusBadRequest, fail(msgMissingLogin))
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, fail(msgInvalidCreds))
		default:
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, fail(msgLoginError))
		}
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: msgLoggedIn,
		Data:    loginData(user, token),
	})
}

// getMe handles GET /auth/me. The auth middleware has already validated the
// token and attached the resolved identity.
func (s *Server) getMe(c *gin.Context) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		c.JSON(http.StatusInternalServerError, fail(msgProfileError))
		return
	}
	user, ok := v.(*models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, fail(msgProfileError))
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Data:    profileData(user),
	})
}
