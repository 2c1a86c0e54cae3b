package cli

import (
	"context"
	"log"
)

func (a *App) Logout(ctx context.Context) {

	if err := a.guard.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return
	}

	a.userName = ""
	log.Printf("Logged out")

}
