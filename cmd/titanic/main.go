package main

import (
	"fmt"
	"log/slog"
	"os"

	"titanic/pkg/analysis"
	"titanic/pkg/config"
	"titanic/pkg/data"
	"titanic/pkg/viz"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	// ---- Load ----
	titanic := data.LoadOrReport(cfg.DataPath, logger)
	if titanic == nil {
		return 0
	}

	// ---- Statistics ----
	if err := analysis.WriteReport(os.Stdout, titanic); err != nil {
		logger.Error("statistics failed", "error", err)
		return 1
	}

	// ---- Age and fare distributions ----
	if err := viz.SaveDistributions(cfg.FigurePath, titanic, cfg.FigureOptions()); err != nil {
		logger.Error("rendering distributions failed", "error", err)
		return 1
	}
	logger.Info("saved distribution figure", "path", cfg.FigurePath)
	return 0
}
