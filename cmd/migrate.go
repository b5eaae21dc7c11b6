package main

import (
	"os"

	"github.com/bellapacxx/jetlag-backend/config"
	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/bellapacxx/jetlag-backend/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}

	db, err := config.SetupDatabase(cfg.DatabaseURL) // connects + migrates
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}

	cards, err := services.ReadCardsFile(cfg.CardsFile)
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}
	n, err := services.SeedCatalog(db, cards)
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}
	logger.Infof("✅ Database migration completed successfully (%d cards seeded)", n)
}
