package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mediavault/mediavault/api"
	"github.com/mediavault/mediavault/tool"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseMediaRoot != "" {
		appCfg.MediaRoot = cfg.UseMediaRoot
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseAccessCode != "" {
		appCfg.AccessCode = cfg.UseAccessCode
	}

	// initialize logger
	tool.InitLogger()
	switch strings.ToLower(cfg.Log) {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	if err := os.MkdirAll(appCfg.MediaRoot, 0o755); err != nil {
		tool.DefaultLogger.Fatalf("Failed to create media root %s: %v", appCfg.MediaRoot, err)
	}

	server, err := api.NewServer(appCfg)
	if err != nil {
		tool.DefaultLogger.Fatalf("Failed to initialize server: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close server: %v", err)
		}
	}()

	if err := server.Start(); err != nil {
		tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
	}
}
