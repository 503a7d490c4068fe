// Command syncd keeps a local note database in sync with the cloud: it runs
// a full sync pass every interval and applies realtime changes in between.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/toonsync/internal/app"
	"github.com/dmitrijs2005/toonsync/internal/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	runErr := a.Run(ctx)
	if err := a.Close(); err != nil {
		log.Printf("close: %v", err)
	}
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}
}
