package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/harrykeightley/wordcrossing-generator/internal/config"
	"github.com/harrykeightley/wordcrossing-generator/internal/generator"
	"github.com/harrykeightley/wordcrossing-generator/internal/logger"
	"github.com/harrykeightley/wordcrossing-generator/internal/preview"
	"github.com/harrykeightley/wordcrossing-generator/internal/store"
	"github.com/harrykeightley/wordcrossing-generator/internal/words"
)

func main() {
	configFile := flag.String("config", "data/levelgen.yaml", "Path to config YAML file")
	wordsFile := flag.String("words", "", "Path to generation wordlist (overrides config)")
	count := flag.Int("count", -1, "Number of levels to generate (overrides config)")
	rows := flag.Int("rows", 0, "Grid rows (overrides config)")
	cols := flag.Int("cols", 0, "Grid columns (overrides config)")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	outDir := flag.String("out", "", "Artifact output directory (overrides config)")
	format := flag.String("format", "", "Artifact format: json or yaml (overrides config)")
	startDate := flag.String("start-date", "", "Date of the first level, YYYY-MM-DD (overrides config)")
	backend := flag.String("store", "", "Database backend: none, sqlite or postgres (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	dsn := flag.String("dsn", "", "Postgres connection string (overrides config)")
	previewAddr := flag.String("preview", "", "Preview service listen address (empty: disabled)")
	showLevels := flag.Bool("show", false, "Print each accepted level to stdout")
	verify := flag.Bool("verify", false, "Re-check every accepted level's invariants before saving")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *wordsFile, *count, *rows, *cols, *outDir, *format, *startDate, *backend, *dbPath, *dsn, *previewAddr)

	logger.Initialize(cfg.Logging)

	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}
	if cfg.Generator.Seed == 0 {
		cfg.Generator.Seed = time.Now().UnixNano()
		logger.Info("Generation seed selected", "seed", cfg.Generator.Seed, "random", true)
	} else {
		logger.Info("Generation seed selected", "seed", cfg.Generator.Seed, "random", false)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	index, err := words.Load(cfg.Wordlist)
	if err != nil {
		logger.Error("Failed to load wordlist", "error", err)
		os.Exit(1)
	}
	logger.Info("Wordlist loaded", "path", cfg.Wordlist, "words", index.Len())

	gen, err := generator.New(cfg.Generator, index)
	if err != nil {
		logger.Error("Failed to create generator", "error", err)
		os.Exit(1)
	}

	stores, previewSrv := setupOutputs(cfg)
	defer func() {
		for _, s := range stores {
			s.Close()
		}
	}()

	if previewSrv != nil {
		go func() {
			logger.Info("Preview service listening", "addr", cfg.Preview.Addr)
			if err := http.ListenAndServe(cfg.Preview.Addr, previewSrv); err != nil {
				logger.Error("Preview service failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	firstDay, _ := time.Parse("2006-01-02", cfg.Output.StartDate)
	started := time.Now()
	for i := 0; i < cfg.Output.Count; i++ {
		lvl, err := gen.Generate()
		if err != nil {
			logger.Error("Generation failed", "error", err, "produced", i)
			os.Exit(1)
		}
		lvl.Name = firstDay.AddDate(0, 0, i).Format("2006-01-02")

		if *verify {
			if err := lvl.Verify(index, cfg.Generator.MinAvgWordLen); err != nil {
				logger.Error("Level failed verification", "name", lvl.Name, "error", err)
				os.Exit(1)
			}
		}

		for _, s := range stores {
			if err := s.Save(lvl); err != nil {
				logger.Error("Failed to save level", "name", lvl.Name, "error", err)
				os.Exit(1)
			}
		}
		if previewSrv != nil {
			previewSrv.Notify(lvl)
		}

		logger.Info("Level generated",
			"name", lvl.Name,
			"words", len(lvl.Solution),
			"avg_word_len", fmt.Sprintf("%.2f", lvl.AverageWordLength()),
			"letters", lvl.TotalLetters())
		if *showLevels {
			fmt.Println(lvl.Render())
			fmt.Println("Solution:", lvl.SolutionWords())
		}
	}

	counters := gen.Counters()
	logger.Info("Generation complete",
		"levels", cfg.Output.Count,
		"attempts", counters.Attempts,
		"degenerate_grids", counters.DegenerateGrids,
		"unsolvable", counters.Unsolvable,
		"low_quality", counters.LowQuality,
		"elapsed", time.Since(started).Round(time.Millisecond).String())

	if previewSrv != nil {
		// Keep serving the stored levels after generation finishes.
		select {}
	}
}

// applyOverrides copies set flag values over the loaded config: non-empty
// strings, positive dimensions and a non-negative count.
func applyOverrides(cfg *config.Config, wordsFile string, count, rows, cols int, outDir, format, startDate, backend, dbPath, dsn, previewAddr string) {
	if wordsFile != "" {
		cfg.Wordlist = wordsFile
	}
	if count >= 0 {
		cfg.Output.Count = count
	}
	if rows > 0 {
		cfg.Generator.Rows = rows
	}
	if cols > 0 {
		cfg.Generator.Cols = cols
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if startDate != "" {
		cfg.Output.StartDate = startDate
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if dsn != "" {
		cfg.Store.DSN = dsn
	}
	if previewAddr != "" {
		cfg.Preview.Addr = previewAddr
	}
}

// setupOutputs builds the configured stores and, when enabled, the preview
// service over the first of them.
func setupOutputs(cfg *config.Config) ([]store.Store, *preview.Server) {
	var stores []store.Store

	if cfg.Output.Dir != "" {
		fileStore, err := store.NewFileStore(cfg.Output.Dir, cfg.Output.Format)
		if err != nil {
			logger.Error("Failed to open artifact directory", "error", err)
			os.Exit(1)
		}
		stores = append(stores, fileStore)
		logger.Info("Writing level artifacts", "dir", cfg.Output.Dir, "format", cfg.Output.Format)
	}

	switch cfg.Store.Backend {
	case "sqlite":
		db, err := store.OpenSQLite(cfg.Store.Path)
		if err != nil {
			logger.Error("Failed to open SQLite store", "error", err)
			os.Exit(1)
		}
		stores = append(stores, db)
		logger.Info("Using SQLite store", "path", cfg.Store.Path)
	case "postgres":
		db, err := store.OpenPostgres(cfg.Store.DSN)
		if err != nil {
			logger.Error("Failed to open Postgres store", "error", err)
			os.Exit(1)
		}
		stores = append(stores, db)
		logger.Info("Using Postgres store")
	}

	if len(stores) == 0 {
		logger.Error("No outputs configured: set an artifact directory or a store backend")
		os.Exit(1)
	}

	var previewSrv *preview.Server
	if cfg.Preview.Addr != "" {
		previewSrv = preview.NewServer(stores[0], cfg.Preview.AllowedOrigins)
	}
	return stores, previewSrv
}
