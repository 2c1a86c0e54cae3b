package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/common"
)

func (a *App) Register(ctx context.Context) {

	fullName, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	defer common.WipeByteArray(password)

	user, err := a.guard.Register(ctx, fullName, email, username, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", serverMessage(err))
		return
	}

	a.userName = user.Username
	log.Printf("Registration successful, welcome %s", user.FullName)

}

// serverMessage prefers the message the server sent over the raw error text.
func serverMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
