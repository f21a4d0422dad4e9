package main

import (
	"context"
	"log"

	"ai-langcoach-be/internal/bootstrap"
	"ai-langcoach-be/internal/config"
	"ai-langcoach-be/internal/server"
	"ai-langcoach-be/internal/tracer"
)

func main() {
	ctx := context.Background()

	// 1. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(ctx)

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap application: %v", err)
	}
	defer container.Shutdown()

	// 4. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
