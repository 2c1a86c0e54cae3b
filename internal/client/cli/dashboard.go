package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/client/services"
	"github.com/dkalnins/auctionhub/internal/client/session"
)

// redirectDelay lets the user read the session-expired message before the
// prompt drops back to the anonymous menu.
var redirectDelay = 2 * time.Second

// Dashboard is the protected view: it renders the cached profile immediately,
// then confirms the session with the server and re-renders the fresh identity.
func (a *App) Dashboard(ctx context.Context) {

	user, err := a.guard.EnterProtectedView(ctx, func(s *session.Snapshot) {
		fmt.Fprintln(a.out, "Dashboard (confirming session...)")
		printSnapshot(a.out, s)
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			log.Printf("Please log in first")
		case errors.Is(err, services.ErrSessionExpired):
			log.Printf("Session expired, please log in again")
			time.Sleep(redirectDelay)
			a.userName = ""
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable, please try again later")
		default:
			log.Printf("error: %v", err)
		}
		return
	}

	a.userName = user.Username
	fmt.Fprintln(a.out, "Dashboard")
	printUser(a.out, user)

}

func printSnapshot(w io.Writer, s *session.Snapshot) {
	fmt.Fprintf(w, "  Name:     %s\n", s.FullName)
	fmt.Fprintf(w, "  Email:    %s\n", s.Email)
	fmt.Fprintf(w, "  Username: %s\n", s.Username)
}

func printUser(w io.Writer, u *api.User) {
	fmt.Fprintf(w, "  Name:     %s\n", u.FullName)
	fmt.Fprintf(w, "  Email:    %s\n", u.Email)
	fmt.Fprintf(w, "  Username: %s\n", u.Username)
	fmt.Fprintf(w, "  Member since: %s\n", u.CreatedAt.Format("2006-01-02"))
}
