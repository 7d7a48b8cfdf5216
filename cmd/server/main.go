package main

import (
	"context"
	"log"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// A missing .env file is fine; settings then come from defaults,
	// the JSON config and flags.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
