// The server hosts interactive Celtic fractal exploration sessions. Each
// websocket connection gets its own explorer; stateless render endpoints
// serve one-off PNGs.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*configPath, *listen, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath, listen string, logger *slog.Logger) error {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if listen != "" {
		cfg.Listen = listen
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newRouter(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("listening", "addr", cfg.Listen, "raster", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
