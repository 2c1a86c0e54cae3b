package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/common"
)

func (a *App) Login(ctx context.Context) {

	identifier, err := GetSimpleText(a.reader, "Enter username or email", a.out)
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

	user, err := a.guard.Login(ctx, identifier, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable, please try again later")
			return
		}
		log.Printf("Login unsuccessful: %s", serverMessage(err))
		return
	}

	a.userName = user.Username
	log.Printf("Login successful, welcome back %s", user.FullName)

}
