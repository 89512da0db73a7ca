package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"movie-catalog/catalog"
	"movie-catalog/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	dbPath := flag.String("db", "advanced_movies.db", "database file to rebuild")
	file := flag.String("file", "", "YAML list of movies to import (default: built-in catalog)")
	debug := flag.Bool("debug", false, "verbose colored logs")
	flag.Parse()

	if err := run(*dbPath, *file, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, file string, debug bool) error {
	movies := catalog.DefaultMovies
	if file != "" {
		var err error
		if movies, err = readMovies(file); err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
	}

	// Clean up any existing database files
	fmt.Println("Cleaning up existing database files...")
	for _, f := range []string{dbPath, dbPath + "-shm", dbPath + "-wal"} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", f, err)
		}
	}
	fmt.Println("Database cleanup complete.")

	log := logger.Setup(debug)
	manager, err := catalog.NewManager(log, dbPath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer manager.Close()

	ctx := context.Background()
	fmt.Printf("Importing %d movies...\n", len(movies))
	n, err := manager.Import(ctx, movies)
	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d movies\n", n)

	if n > 0 {
		fmt.Println("\nImported movies:")
		all, lerr := manager.GetAllMovies(ctx)
		if lerr != nil {
			fmt.Printf("Error retrieving movies: %v\n", lerr)
		} else {
			fmt.Printf("%-3s %-50s %-30s\n", "ID", "Title", "Director")
			fmt.Println(strings.Repeat("-", 85))
			for _, m := range all {
				fmt.Printf("%-3d %-50s %-30s\n", m.ID, truncateString(m.Title, 50), truncateString(m.Director, 30))
			}
		}
	}
	return err
}

// readMovies decodes a YAML sequence of movies.
func readMovies(path string) ([]catalog.MovieInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var movies []catalog.MovieInput
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&movies); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return movies, nil
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
