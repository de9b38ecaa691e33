package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/startup"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/startup/config"
)

func main() {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	server := startup.NewServer(cfg)
	server.Start()
}
