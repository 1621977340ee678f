package main

import (
	"context"

	"github.com/raise-sistemas/jsr-uid/internal/app"
)

func main() {
	application := app.New()
	<-application.Start()

	// the deadline starts at shutdown, not at boot
	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	application.Stop(ctx)
}
