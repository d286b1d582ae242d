package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/eventpublisher/cmd/eventctl/commands"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
