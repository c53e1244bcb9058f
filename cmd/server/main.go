package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"dog-registry/internal/platform/config"
	"dog-registry/internal/platform/logger"
	"dog-registry/internal/router"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG"), "ruta del archivo TOML de configuración (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// todavía no hay logger armado
		println("config error:", err.Error())
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	handler, err := router.New(router.Options{Config: cfg, Log: log})
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "origin": cfg.Origin, "store": cfg.Store})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
