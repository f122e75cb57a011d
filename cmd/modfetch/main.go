package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/handiism/modfetch/internal/config"
	"github.com/handiism/modfetch/internal/download"
	ioutils "github.com/handiism/modfetch/internal/io"
	"github.com/handiism/modfetch/internal/logger"
	"github.com/handiism/modfetch/internal/manifest"
	"github.com/handiism/modfetch/internal/model"
	"github.com/handiism/modfetch/internal/report"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitIncomplete  = 3
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFlag       = flag.String("config", "", "Path to config file")
		envFlag          = flag.String("env", ".env", "Path to a .env file with MODFETCH_API_KEY")
		workersFlag      = flag.Int("workers", 0, "Number of parallel downloads (overrides config)")
		maxRoundsFlag    = flag.Int("max-rounds", -1, "Maximum retry rounds, 0 for unlimited (overrides config)")
		reportFlag       = flag.String("report", "", "Write a report of manual downloads to this file")
		reportFormatFlag = flag.String("report-format", "text", "Report format: text, markdown or json")
		verboseFlag      = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "modfetch - Download the mods of a CurseForge modpack")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  modfetch [options] <manifest.json> <output-dir>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: modfetch-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return exitUsage
	}
	manifestPath, outDir := flag.Arg(0), flag.Arg(1)

	format, err := report.ParseFormat(*reportFormatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return exitError
		}
	}
	if err := settings.ApplyEnv(*envFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		return exitError
	}

	// Apply flags
	if *workersFlag > 0 {
		settings.MaxConcurrentDownloads = *workersFlag
	}
	if *maxRoundsFlag >= 0 {
		settings.MaxRetryRounds = *maxRoundsFlag
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	log := logger.New(logger.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Path:   settings.LogPath,
	})
	defer log.Close()

	entries, err := manifest.Load(manifestPath)
	if err != nil {
		log.Error().Err(err).Msg("Error reading manifest")
		return exitError
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("Interrupted, cancelling...")
		cancel()
	}()

	manager := download.NewManager(settings, outDir, log.Logger, func(event download.ProgressEvent) {
		log.WithLevel(eventLevel(event.Level)).Msg(event.Message)
	})

	log.Info().Int("mods", len(entries)).Str("output", outDir).Msg("Downloading mods")

	result, err := manager.Run(ctx, entries)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn().Msg("Download cancelled")
			return exitInterrupted
		}
		log.Error().Err(err).Msg("Error during download")
		return exitError
	}

	printSummary(result)

	if *reportFlag != "" {
		content, err := report.NewCreator(format).CreateReport(result)
		if err == nil {
			err = ioutils.WriteFile(ctx, *reportFlag, []byte(content))
		}
		if err != nil {
			log.Error().Err(err).Str("path", *reportFlag).Msg("Error writing report")
			return exitError
		}
		log.Info().Str("path", *reportFlag).Msg("Report written")
	}

	if !result.Complete() {
		return exitIncomplete
	}
	return exitOK
}

func printSummary(result *model.Result) {
	fmt.Println()
	fmt.Printf("Fetched %d/%d mods in %d round(s)\n",
		len(result.Jars)-len(result.ManualDownloads), len(result.Jars)+len(result.Failed), result.Rounds)

	if len(result.ManualDownloads) > 0 {
		fmt.Println()
		fmt.Println("The following mods must be downloaded manually:")
		for _, md := range result.ManualDownloads {
			fmt.Printf("  %s\n    -> %s\n", md.URL, md.Outcome.Path)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Println()
		fmt.Println("The following mods could not be fetched:")
		for _, e := range result.Failed {
			fmt.Printf("  project %d, file %d\n", e.ProjectID, e.FileID)
		}
	}
}

func eventLevel(level download.ProgressLevel) zerolog.Level {
	switch level {
	case download.LevelVerbose:
		return zerolog.DebugLevel
	case download.LevelWarning:
		return zerolog.WarnLevel
	case download.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
