package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/annolab/maskset"
	"github.com/annolab/maskset/internal/config"
	"github.com/annolab/maskset/internal/logging"
	"github.com/annolab/maskset/internal/server"
	"github.com/annolab/maskset/internal/utils"
	"github.com/annolab/maskset/pkg/sam"
	"github.com/annolab/maskset/pkg/types"
)

func main() {
	var cfgPath, addr, samURL, mode string
	var exportFile, out string
	var initConfig bool

	flag.StringVar(&cfgPath, "config", "", "config file path (defaults to the user config file when present)")
	flag.StringVar(&addr, "addr", "", "listen address, overrides config")
	flag.StringVar(&samURL, "sam", "", "segmentation service URL, overrides config")
	flag.StringVar(&mode, "mode", "", "log mode: debug|release, overrides config")
	flag.StringVar(&exportFile, "export", "", "one-shot mode: export request JSON file, no server")
	flag.StringVar(&out, "out", "dataset.zip", "output archive path for one-shot export")
	flag.BoolVar(&initConfig, "init-config", false, "write the default config file and exit")
	flag.Parse()

	if initConfig {
		path := config.GetConfigPath()
		if err := config.Default().SaveToFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	if cfgPath == "" && utils.FileExists(config.GetConfigPath()) {
		cfgPath = config.GetConfigPath()
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if samURL != "" {
		cfg.SAM.URL = samURL
	}
	if mode != "" {
		cfg.Server.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Server.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if exportFile != "" {
		if err := runExport(log, exportFile, out); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}
		return
	}

	runServer(log, cfg)
}

// runExport reads an export request from a JSON file and writes the
// archive to disk.
func runExport(log *zap.Logger, requestPath, outPath string) error {
	data, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	var req types.ExportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	result, err := maskset.New().Export(req)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		log.Warn("export warning", zap.String("warning", warning))
	}

	if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, result.Archive, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	log.Info("wrote archive",
		zap.String("path", outPath),
		zap.Int("images", result.ImageCount),
		zap.Int("annotations", result.AnnotationCount),
		zap.String("size", utils.FormatFileSize(int64(len(result.Archive)))))
	return nil
}

// runServer starts the HTTP server and blocks until interrupted.
func runServer(log *zap.Logger, cfg *config.Config) {
	segmenter, err := sam.NewClient(cfg.SAM.URL)
	if err != nil {
		log.Fatal("failed to create segmentation client", zap.Error(err))
	}

	srv := server.New(cfg, segmenter, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
