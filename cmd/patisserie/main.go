package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/patisserie/internal/app"
)

func main() {
	// A .env file is optional; the environment wins over it.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ patisserie failed to start: %v", err)
	}
}
