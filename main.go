package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/authn8-mcp/internal/app"
)

func main() {
	application := app.New()    // Validate the token and wire the tools
	wait := application.Start() // Serve until the peer disconnects or a signal arrives
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
