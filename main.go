// @title Ask Ky'ra Advising Portal API
// @version 1.0
// @description Backend server for the Ask Ky'ra student advising portal.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"kyra_advising_backend/internal/app"
	"kyra_advising_backend/internal/config"
	"kyra_advising_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run schema migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Schema migration finished, exiting")
		return
	}

	application.Run()
}
