// Package main is the pictriage CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pictriage/pictriage/internal/config"
	"github.com/pictriage/pictriage/internal/export"
	"github.com/pictriage/pictriage/internal/hierarchy"
	"github.com/pictriage/pictriage/internal/models"
	"github.com/pictriage/pictriage/internal/server"
	"github.com/pictriage/pictriage/internal/watcher"
	"github.com/pictriage/pictriage/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/pictriage/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "pictriage server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "convert":
		runConvert()
	case "version", "--version", "-v":
		fmt.Printf("pictriage version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (upload details, inbox events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	var inbox *watcher.Inbox
	if len(cfg.Inbox.Directories) > 0 {
		inboxOpts := []watcher.Option{}
		if debugMode {
			inboxOpts = append(inboxOpts, watcher.WithLogger(logger))
		}
		outputDir := cfg.Inbox.OutputDir
		inbox = watcher.NewInbox(
			cfg.Inbox.Directories,
			cfg.Inbox.Extensions,
			cfg.Inbox.RecursiveOrDefault(),
			func(path string) {
				out, err := watcher.ConvertSheet(path, outputDir)
				if err != nil {
					logger.Warn("inbox convert failed", zap.String("path", path), zap.Error(err))
					return
				}
				logger.Info("inbox sheet converted", zap.String("path", path), zap.String("output", out))
			},
			inboxOpts...,
		)
		inboxCtx, inboxCancel := context.WithCancel(context.Background())
		defer inboxCancel()
		if err := inbox.Start(inboxCtx); err != nil {
			logger.Fatal("Failed to start inbox watcher", zap.Error(err))
		}
		inbox.SyncExistingFiles()
	}

	srv := server.NewServer(&cfg.Server, &cfg.Upload, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if inbox != nil {
		inbox.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runConvert() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	format := fs.String("format", models.FormatXLSX, "export format for hierarchy JSON input: csv or xlsx")
	reviewedOnly := fs.Bool("reviewed-only", false, "export only images marked defective or carrying a review comment")
	outPath := fs.String("o", "", "output path (default: <input>.json for sheets, reviewed_images.<format> for hierarchy JSON)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pictriage convert [flags] <sheet.csv|sheet.xlsx|hierarchy.json>")
		os.Exit(1)
	}
	input := fs.Arg(0)

	ext := strings.ToLower(filepath.Ext(input))
	if ext == ".json" {
		if err := convertHierarchyJSON(input, *format, *reviewedOnly, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Convert failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	outputDir := ""
	if *outPath != "" {
		outputDir = filepath.Dir(*outPath)
	}
	out, err := watcher.ConvertSheet(input, outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Convert failed: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" && out != *outPath {
		if err := os.Rename(out, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Convert failed: %v\n", err)
			os.Exit(1)
		}
		out = *outPath
	}
	fmt.Printf("Hierarchy written: %s\n", out)
}

// convertHierarchyJSON re-flattens an annotated hierarchy JSON file into a
// csv or xlsx export, closing the review loop without the HTTP layer.
func convertHierarchyJSON(input, format string, reviewedOnly bool, outPath string) error {
	req := models.ExportRequest{Format: format, ReviewedOnly: reviewedOnly}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &req.Data); err != nil {
		return fmt.Errorf("parse hierarchy JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	records := hierarchy.Flatten(&req.Data, req.ReviewedOnly)
	out, err := export.Serialize(records, req.Format)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = export.Filename(req.Format)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return err
	}
	fmt.Printf("Exported %d record(s): %s\n", len(records), outPath)
	return nil
}

func printUsage() {
	fmt.Println(`pictriage - review-sheet ingestion and export service

Usage:
  pictriage server [flags]            Start the HTTP server
  pictriage convert [flags] <input>   Convert a sheet to hierarchy JSON, or
                                      an annotated hierarchy JSON to csv/xlsx
  pictriage version                   Show version
  pictriage help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/pictriage/config.yaml)
  --debug            Enable debug logging (upload details, inbox events, etc.)

Convert Flags:
  --format string    Export format for hierarchy JSON input: csv or xlsx (default: xlsx)
  --reviewed-only    Export only images marked defective or carrying a review comment
  -o string          Output path

Examples:
  pictriage server
  pictriage convert batch_07.xlsx
  pictriage convert --format csv --reviewed-only batch_07.json
  pictriage convert -o /tmp/out.json batch_07.csv`)
}
