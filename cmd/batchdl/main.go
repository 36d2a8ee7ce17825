package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/batchdl/batchdl/internal/config"
	"github.com/batchdl/batchdl/internal/download"
)

func main() {
	// Command line flags
	var (
		inputFlag        = flag.String("input", "", "JSON file holding the input entries (or pass URLs as arguments)")
		outputFlag       = flag.String("output", "", "Output directory (overrides config)")
		configFlag       = flag.String("config", "", "Path to config file")
		patternFlag      = flag.String("pattern", "", "Filename pattern, e.g. \"{name}_{index}\" (overrides config)")
		baseURLFlag      = flag.String("base-url", "", "Base URL for resolving relative entries")
		parseSelFlag     = flag.String("parse-selector", "", "Path expression yielding the URL of each entry")
		nameSelFlag      = flag.String("name-selector", "", "Path expression yielding the display name of each entry")
		concurrencyFlag  = flag.Int("concurrency", 0, "Concurrent downloads (overrides config)")
		maxSizeFlag      = flag.Float64("max-size", -1, "Maximum declared size in MB (overrides config)")
		verboseFlag      = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag       = flag.Bool("dry-run", false, "Resolve jobs and print filenames without downloading")
	)

	flag.Parse()

	if *inputFlag == "" && flag.NArg() == 0 {
		fmt.Println("batchdl - Download a batch of files with bounded concurrency")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  batchdl [options] <URL> [<URL> ...]")
		fmt.Println("  batchdl -input entries.json [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: batchdl-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.Folder = *outputFlag
	}
	if *patternFlag != "" {
		settings.NamePattern = *patternFlag
	}
	if *baseURLFlag != "" {
		settings.BaseURL = *baseURLFlag
	}
	if *parseSelFlag != "" {
		settings.ParseSelector = *parseSelFlag
	}
	if *nameSelFlag != "" {
		settings.NameSelector = *nameSelFlag
	}
	if *concurrencyFlag > 0 {
		settings.Concurrency = *concurrencyFlag
	}
	if *maxSizeFlag >= 0 {
		settings.MaxSizeInMb = *maxSizeFlag
	}

	// Assemble the input payload
	var payload any
	if *inputFlag != "" {
		data, err := os.ReadFile(*inputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing input: %v\n", err)
			os.Exit(1)
		}
	} else {
		urls := make([]any, flag.NArg())
		for i, arg := range flag.Args() {
			urls[i] = arg
		}
		payload = urls
	}

	if *dryRunFlag {
		planned, err := download.NewManager(settings, nil).Preview(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[Dry run - %d job(s), not downloading]\n", len(planned))
		for _, p := range planned {
			fmt.Printf("%3d  %s  <-  %s\n", p.Job.Index, p.Name, p.Job.URL)
		}
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	batch, err := manager.Run(ctx, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var failed int
	for i, out := range batch.FilePaths {
		if out.OK() {
			fmt.Printf("%3d  %s\n", i, out.Path())
		} else {
			failed++
			fmt.Printf("%3d  failed: %v\n", i, out.Err())
		}
	}

	received, done, total := manager.GetProgress()
	fmt.Println()
	fmt.Printf("✨ Done: %d/%d files (%.2f MB)\n", done, total, float64(received)/1024/1024)
	if failed > 0 {
		fmt.Printf("   %d job(s) failed, see above\n", failed)
	}
}
