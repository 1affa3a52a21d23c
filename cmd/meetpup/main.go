package main

import (
	"context"
	"log"

	"github.com/meetpup/meetpup/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.NewApp(ctx)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	a.Run()
}
