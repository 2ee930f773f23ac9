package main

import (
	"log"

	"attrilens/adapters/sqlite"
	"attrilens/app"
	"attrilens/internal/aggregate"
	"attrilens/internal/config"
	"attrilens/internal/ingest"
	"attrilens/ports"
	"attrilens/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[ui] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	var catalog ports.CatalogRepository
	if cfg.Database.Path != "" {
		db, err := sqlx.Connect("sqlite3", cfg.Database.Path)
		if err != nil {
			log.Fatal("Failed to open catalog database: ", err)
		}
		defer db.Close()
		if catalog, err = sqlite.NewCatalogRepository(db); err != nil {
			log.Fatal("Failed to initialize catalog: ", err)
		}
	}

	svc := app.NewDashboardService(ingest.NewLoader(), aggregate.NewEngine(), catalog, cfg.Data.File)
	uiApp, err := ui.NewApp(svc, ui.Config{Port: cfg.Server.Port})
	if err != nil {
		log.Fatal("Failed to create UI app: ", err)
	}

	log.Printf("Starting AttriLens UI on http://localhost:%s (data: %s)", cfg.Server.Port, cfg.Data.File)
	log.Fatal(uiApp.Start())
}
