package main

import (
	"log"

	"attrilens/adapters/api"
	"attrilens/adapters/sqlite"
	"attrilens/app"
	"attrilens/internal/aggregate"
	"attrilens/internal/config"
	"attrilens/internal/ingest"
	"attrilens/ports"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[api] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	gin.SetMode(cfg.Server.GinMode)

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
	server := api.NewServer(svc)

	log.Printf("Starting AttriLens API on http://localhost:%s (data: %s)", cfg.Server.Port, cfg.Data.File)
	log.Fatal(server.Run(":" + cfg.Server.Port))
}
