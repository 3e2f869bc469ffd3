package main

import (
	"context"
	"log"

	"twitter-api/cmd/api/app"
	"twitter-api/cmd/api/server"
)

func main() {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("failed to start application: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		stop()
		log.Fatalf("application exited with error: %v", err)
	}
}
