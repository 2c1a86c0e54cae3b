package httpapi

import (
	"time"

	"github.com/dkalnins/auctionhub/internal/server/models"
)

// response is the envelope every endpoint answers with:
// {success, message, data}. Message and data are omitted when empty.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// userData carries the public identity fields. The password hash never
// appears here. CreatedAt and Token are optional because login responses
// omit the timestamp and profile responses omit the token.
type userData struct {
	ID        string     `json:"_id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Token     string     `json:"token,omitempty"`
}

func registerData(u *models.User, token string) userData {
	created := u.CreatedAt
	return userData{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: &created,
		Token:     token,
	}
}

func loginData(u *models.User, token string) userData {
	return userData{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Username: u.Username,
		Token:    token,
	}
}

func profileData(u *models.User) userData {
	created := u.CreatedAt
	return userData{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: &created,
	}
}

func fail(message string) response {
	return response{Success: false, Message: message}
}
