package main

import (
	"context"
	"log"

	"tenglaafi-be/internal/bootstrap"
	"tenglaafi-be/internal/config"
	"tenglaafi-be/internal/server"
	"tenglaafi-be/internal/tracer"
	"tenglaafi-be/pkg/database"
)

func main() {
	// 1. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Configuration
	cfg := config.Load()

	// 3. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Background indexing consumer
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Serve
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
