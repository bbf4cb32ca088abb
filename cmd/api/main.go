package main

import (
	"log"

	"gallery-backend/internal/bootstrap"
	"gallery-backend/internal/shared/config"
	"gallery-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(app.Config.Port)
	log.Printf("Starting API server on %s (store=%s)", addr, app.Config.StoreBackend)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
