package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"os"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/client/config"
	"github.com/dkalnins/auctionhub/internal/client/services"
	"github.com/dkalnins/auctionhub/internal/client/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	guard    *services.SessionGuard
	db       *sql.DB
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing session database: %s", err.Error())
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	guard, err := services.NewSessionGuard(ctx, apiClient, store)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config: c,
		guard:  guard,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.guard.State() == services.StateAuthenticated
}
