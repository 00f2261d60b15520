package main

import (
	"os"

	"github.com/kraftory/go-backend/internal/app"
	config "github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
