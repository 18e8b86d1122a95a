// SPDX-License-Identifier: MIT

// Package main provides the opldsm binary entry point.
// opldsm converts an OPL model into a Design Structure Matrix CSV.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/opldsm/config"
	"github.com/katalvlaran/opldsm/opl"
	"github.com/katalvlaran/opldsm/pipeline"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "opldsm"
)

// Styles
var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	if errors.Is(err, opl.ErrInvalidInput) {
		_, _ = fmt.Fprintln(w, errorStyle.Render("Invalid input, exiting."))
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// flags holds command-line values; only explicitly set ones override the
// config file.
type flags struct {
	configPath    string
	clusters      int
	seed          int64
	clusterReport string
	logLevel      string
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "opldsm [flags] <input> <output> <PO|PP|OO>",
		Short: "Convert an OPL model into a Design Structure Matrix",
		Long: `opldsm reads Object-Process Language sentences, extracts processes,
objects and their relations, and writes one of three matrices as CSV:

- PO: process × object, cells hold the relation code (r, a, c, y, h)
- PP: process × process co-occurrence counts
- OO: object × object co-occurrence counts

The matrix kind is case-insensitive and surrounding spaces are ignored, so
"po", " Pp " and "OO" are all accepted.

With --clusters, rows and columns are reordered by spectral clustering so
related entities end up adjacent.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().IntVarP(&f.clusters, "clusters", "k", 0, "Reorder into this many clusters (0 disables clustering)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Clustering seed (default: time-based, logged)")
	cmd.Flags().StringVar(&f.clusterReport, "cluster-report", "", "Write sorted cluster labels to this CSV file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadConfig layers defaults, the optional config file, flags and
// positional arguments.
func loadConfig(cmd *cobra.Command, f flags, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		fileCfg, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.Merge(fileCfg)
	}

	// Explicitly set flags replace file values, zero values included.
	flagSet := cmd.Flags()
	if flagSet.Changed("clusters") {
		cfg.Clusters = f.clusters
	}
	if flagSet.Changed("cluster-report") {
		cfg.ClusterReport = f.clusterReport
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flagSet.Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}

	positional := &config.Config{}
	fields := []*string{&positional.Input, &positional.Output, &positional.Matrix}
	for i, a := range args {
		*fields[i] = a
	}
	cfg.Merge(positional)

	return cfg, nil
}

func run(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sum, err := pipeline.New(logger).Run(ctx, cfg)
	if err != nil {
		return err
	}
	printSummary(stdout, sum)
	return nil
}

func printSummary(w io.Writer, s *pipeline.Summary) {
	_, _ = fmt.Fprintf(w, "%s %s objects / %s processes / %s relationships\n",
		labelStyle.Render("Processed:"),
		countStyle.Render(fmt.Sprint(s.Objects)),
		countStyle.Render(fmt.Sprint(s.Processes)),
		countStyle.Render(fmt.Sprint(s.Relations)))
	if s.Clustered {
		_, _ = fmt.Fprintf(w, "%s %s clusters %s\n",
			labelStyle.Render("Reordered:"),
			countStyle.Render(fmt.Sprint(s.Clusters)),
			subtleStyle.Render(fmt.Sprintf("(seed %d)", s.Seed)))
	}
	_, _ = fmt.Fprintf(w, "%s %s matrix to %s\n",
		labelStyle.Render("Wrote"), s.Kind, pathStyle.Render(s.Output))
	if s.ClusterReport != "" {
		_, _ = fmt.Fprintf(w, "%s cluster report to %s\n",
			labelStyle.Render("Wrote"), pathStyle.Render(s.ClusterReport))
	}
}
