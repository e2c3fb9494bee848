package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/rectify/ocr"
	"github.com/tsawler/rectify/server"
)

func serveCmd() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rectification HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = *loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			backend, cleanup, err := buildBackend(cfg.OCR)
			if err != nil {
				return err
			}
			if cleanup != nil {
				defer cleanup()
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      server.New(cfg, backend).Handler(),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 2 * time.Minute,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s (ocr backend: %s)", cfg.Addr, cfg.OCR.Backend)
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Printf("received %s, shutting down", sig)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")

	return cmd
}

// buildBackend constructs the configured OCR backend. The returned cleanup
// releases backend resources and may be nil.
func buildBackend(cfg server.OCRConfig) (ocr.Adapter, func(), error) {
	switch cfg.Backend {
	case "none":
		return nil, nil, nil
	case "tesseract":
		engine, err := ocr.NewTesseract()
		if err != nil {
			return nil, nil, fmt.Errorf("starting tesseract: %w", err)
		}
		if cfg.Language != "" {
			if err := engine.SetLanguage(cfg.Language); err != nil {
				engine.Close()
				return nil, nil, fmt.Errorf("setting language: %w", err)
			}
		}
		return engine, func() { engine.Close() }, nil
	case "remote":
		client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
		return ocr.NewRemote(cfg.RemoteURL, cfg.RemoteSecret, client), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown ocr backend %q", cfg.Backend)
	}
}
