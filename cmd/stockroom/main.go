package main

import (
	"io"
	"os"

	"stockroom/internal/config"
	"stockroom/internal/http/handlers"
	applog "stockroom/internal/log"
	"stockroom/internal/repos"
)

func main() {
	cfg := config.Load()
	defer func() { _ = applog.Sync() }()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Error(nil, "log.file.open", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.SeedUsers)
	if err != nil {
		applog.Error(nil, "db.open", err, map[string]any{"dsn": cfg.DBDSN})
		os.Exit(1)
	}
	defer db.Close()

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		applog.Error(nil, "deps.init", err, nil)
		os.Exit(1)
	}
	app := handlers.NewApp(cfg, deps)

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "media_dir": deps.MediaDir})
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Error(nil, "server.stop", err, nil)
		os.Exit(1)
	}
}
