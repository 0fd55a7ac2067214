// Command devserver runs the mpdash development backend: the REST API the
// client talks to, over a local SQLite database.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/mpdash/internal/buildinfo"
	"github.com/dmitrijs2005/mpdash/internal/flagx"
	"github.com/dmitrijs2005/mpdash/internal/server"
	"github.com/dmitrijs2005/mpdash/internal/server/config"
)

func main() {
	if flagx.HasBoolFlag(os.Args[1:], "-version", "--version") {
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
