package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harrykeightley/wordcrossing-generator/internal/store"
)

func main() {
	dir := flag.String("dir", "", "Artifact directory to read levels from")
	format := flag.String("format", "json", "Artifact format: json or yaml")
	dbPath := flag.String("db", "", "SQLite database to read levels from")
	dsn := flag.String("dsn", "", "Postgres connection string to read levels from")
	name := flag.String("name", "", "Level name to display (empty: all)")
	showSolution := flag.Bool("solution", false, "Show solution words")
	flag.Parse()

	levels, err := openStore(*dir, *format, *dbPath, *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer levels.Close()

	names := []string{*name}
	if *name == "" {
		names, err = levels.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing levels: %v\n", err)
			os.Exit(1)
		}
		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, "No levels found")
			os.Exit(1)
		}
	}

	for _, levelName := range names {
		lvl, err := levels.Load(levelName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading level %s: %v\n", levelName, err)
			os.Exit(1)
		}
		fmt.Printf("Level %s (%dx%d, %d words)\n", lvl.Name, lvl.Rows, lvl.Cols, len(lvl.Solution))
		fmt.Println(lvl.Render())
		if *showSolution {
			fmt.Println("Solution:", strings.Join(lvl.SolutionWords(), " -> "))
		}
		fmt.Println()
	}
}

func openStore(dir, format, dbPath, dsn string) (store.Store, error) {
	switch {
	case dir != "":
		return store.NewFileStore(dir, format)
	case dbPath != "":
		return store.OpenSQLite(dbPath)
	case dsn != "":
		return store.OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("one of -dir, -db or -dsn is required")
	}
}
