package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bucketlist/internal/buildinfo"
	"github.com/dmitrijs2005/bucketlist/internal/client/cli"
	"github.com/dmitrijs2005/bucketlist/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Root(ctx)
}
