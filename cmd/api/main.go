package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/terangalabs/livraison-webhook/internal/app/api"
)

func main() {
	// Local development keeps credentials in a .env file; a missing file
	// is fine in production.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("livraison-webhook: %v", err)
	}
}
