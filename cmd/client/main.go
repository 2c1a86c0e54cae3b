package main

import (
	"context"
	"log"

	"github.com/dkalnins/auctionhub/internal/client/cli"
	"github.com/dkalnins/auctionhub/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
