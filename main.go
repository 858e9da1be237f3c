package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"contact-navigator/config"
	"contact-navigator/engine"
	"contact-navigator/formatter"
	"contact-navigator/logging"
	"contact-navigator/metrics"
	"contact-navigator/models"
	"contact-navigator/parser"
	"contact-navigator/server"
)

func main() {
	// Define flags
	queues := flag.String("queues", "", "Queue/intent baseline CSV file (required)")
	roles := flag.String("roles", "", "Role/headcount baseline CSV file (required)")
	catalog := flag.String("catalog", "", "Initiative catalog YAML (default: built-in library)")
	configPath := flag.String("config", "", "Config YAML file (default: config.yaml if present)")
	format := flag.String("format", "text", "Output format: text|json|csv")
	scenario := flag.String("scenario", "base", "Scenario to headline: base|conservative|aggressive")
	serveAddr := flag.String("serve", "", "Serve the result as an HTTP API on this address (e.g., :8080)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Validate required input flags
	if *queues == "" || *roles == "" {
		fmt.Println("Error: -queues and -roles flags are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Logger.ColorEnabled {
		color.NoColor = true
	}

	log := logging.Init(logging.Config{
		Level:        cfg.Logger.Level,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	ctx := context.Background()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	inputs, err := loadInputs(*queues, *roles, *catalog)
	if err != nil {
		fmt.Printf("Error loading inputs: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.Run(ctx, inputs, cfg, log)
	if err != nil {
		fmt.Printf("Error running engine: %v\n", err)
		os.Exit(1)
	}

	// The engine always computes every scenario; the flag picks which one
	// the report headlines.
	if _, ok := result.Scenarios[*scenario]; !ok {
		fmt.Printf("Error: scenario must be one of: base, conservative, aggressive (got: %s)\n", *scenario)
		os.Exit(1)
	}
	result.Scenario = *scenario

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(result))
	case "csv":
		fmt.Print(formatter.FormatCSV(result))
	default: // "text"
		fmt.Print(formatter.FormatText(result))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "contact_navigator"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *serveAddr != "" {
		srv, err := server.New(log, server.Config{
			Addr:   *serveAddr,
			Mode:   cfg.Server.Mode,
			Result: result,
		})
		if err != nil {
			fmt.Printf("Error building API server: %v\n", err)
			os.Exit(1)
		}
		log.Infof(ctx, "results API listening on %s", *serveAddr)
		if err := srv.Run(); err != nil {
			fmt.Printf("API server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

// loadInputs reads the two CSV baselines and the initiative catalog.
func loadInputs(queuesPath, rolesPath, catalogPath string) (models.Inputs, error) {
	start := time.Now()

	queuesFile, err := os.Open(queuesPath)
	if err != nil {
		return models.Inputs{}, fmt.Errorf("open queues: %w", err)
	}
	defer queuesFile.Close()

	queues, err := parser.ParseQueues(queuesFile)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues("queues").Inc()
		return models.Inputs{}, fmt.Errorf("parse queues: %w", err)
	}

	rolesFile, err := os.Open(rolesPath)
	if err != nil {
		return models.Inputs{}, fmt.Errorf("open roles: %w", err)
	}
	defer rolesFile.Close()

	roles, err := parser.ParseRoles(rolesFile)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues("roles").Inc()
		return models.Inputs{}, fmt.Errorf("parse roles: %w", err)
	}

	initiatives := parser.DefaultCatalog()
	if catalogPath != "" {
		initiatives, err = parser.LoadCatalogFile(catalogPath)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("catalog").Inc()
			return models.Inputs{}, fmt.Errorf("load catalog: %w", err)
		}
	}

	metrics.ParserRecordsTotal.Add(float64(len(queues) + len(roles) + len(initiatives)))
	metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())

	return models.Inputs{Queues: queues, Roles: roles, Initiatives: initiatives}, nil
}
