package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"fftcli/internal/config"
	"fftcli/internal/files"
	"fftcli/internal/infrastructure"
	"fftcli/internal/operations"
	"fftcli/internal/suppression"
	"fftcli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory for extract .xlsx files (defaults to data/extracts relative to executable)")
	outDir := flag.String("out", "", "output directory for reports (defaults to data/reports relative to executable)")
	servicesFlag := flag.String("services", "", "comma-separated survey streams to process (defaults to all with an extract present)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *inDir != "" {
		paths.ExtractsDir = *inDir
	}
	if *outDir != "" {
		paths.ReportsDir = *outDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	services, err := parseServices(*servicesFlag)
	if err != nil {
		logger.Error("Invalid -services value", "error", err)
		os.Exit(1)
	}

	engine, err := suppression.NewEngine(suppression.Params{
		Threshold:    cfg.Suppression.Threshold,
		CascadeDepth: cfg.Suppression.CascadeDepth,
	}, logger)
	if err != nil {
		logger.Error("Failed to create suppression engine", "error", err)
		os.Exit(1)
	}

	manager := operations.NewManager(
		operations.NewPipeline(engine, paths),
		files.NewDiscovery(paths.ExtractsDir),
		paths,
		nil,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.DefaultRunTimeout)
	defer cancel()

	resp, err := manager.Execute(ctx, operations.RunRequest{Services: services})
	if err != nil {
		logger.Error("Run failed to start", "error", err)
		os.Exit(1)
	}

	printSummary(resp)

	if resp.Status != operations.RunStatusCompleted {
		os.Exit(1)
	}
}

// parseServices turns a comma-separated flag value into typed stream
// identifiers, rejecting anything outside the known set.
func parseServices(value string) ([]domain.ServiceType, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	known := make(map[domain.ServiceType]bool)
	for _, s := range domain.ServiceTypes() {
		known[s] = true
	}

	var out []domain.ServiceType
	for _, part := range strings.Split(value, ",") {
		svc := domain.ServiceType(strings.ToLower(strings.TrimSpace(part)))
		if svc == "" {
			continue
		}
		if !known[svc] {
			return nil, fmt.Errorf("unknown survey stream %q", svc)
		}
		out = append(out, svc)
	}
	return out, nil
}

func printSummary(resp *operations.RunResponse) {
	fmt.Printf("Run %s: %s (%s)\n", resp.ID, resp.Status, resp.Duration.Round(time.Millisecond))

	services := make([]domain.ServiceType, 0, len(resp.Services))
	for svc := range resp.Services {
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })

	for _, svc := range services {
		result := resp.Services[svc]
		if result.Failed() {
			fmt.Printf("  %-10s FAILED: %s\n", svc, result.Error)
			continue
		}
		suppressed := 0
		for _, n := range result.Suppressed {
			suppressed += n
		}
		fmt.Printf("  %-10s %s: %d report files, %d rows suppressed\n",
			svc, result.Period, len(result.ReportFiles), suppressed)
	}

	if resp.Error != "" {
		fmt.Printf("Error: %s\n", resp.Error)
	}
}
