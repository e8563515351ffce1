package main

import (
	"context"
	"log"

	"github.com/privafile/privafile/internal/server"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
