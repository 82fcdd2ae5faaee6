package main

import (
	"log"

	"github.com/pudu/heartgate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ heartgate failed to start: %v", err)
	}
}
