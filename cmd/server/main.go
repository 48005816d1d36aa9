package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/atfurman/taskapp/internal/server"
	"github.com/atfurman/taskapp/internal/server/config"
)

func main() {

	// a missing .env is fine, the environment may be set elsewhere
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
