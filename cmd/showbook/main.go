package main

import (
	"context"
	"net/http"
	"os"

	"showbook/internal/logging"
	"showbook/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(logging.Config{}).Fatal(err, "invalid configuration")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err, "database unavailable")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrap(context.Background(), cfg, dataStore); err != nil {
		logger.Fatal(err, "bootstrap failed")
	}

	handler := newHTTPHandler(cfg, dataStore)

	logger.Info("API available at http://localhost" + cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal(err, "server error")
	}
}
