package main

import (
	"context"
	"log"

	"rest-user-client/cmd/demo/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("demo exited with error: %v", err)
	}
}

func run() error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer func() { _ = a.Logger.Sync() }()

	ctx, cancel := app.WithSignal(context.Background(), a.Logger)
	defer cancel()

	return a.Run(ctx)
}
