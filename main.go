package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"movie-catalog/catalog"
	"movie-catalog/config"
	"movie-catalog/logger"

	"github.com/spf13/cobra"
)

// app carries what every command needs once the root command has started.
type app struct {
	cfg *config.Config
	log *slog.Logger
	mgr *catalog.Manager
	in  io.Reader
	out io.Writer
}

type rootFlags struct {
	configPath string
	dbPath     string
	debug      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command line and always releases the database.
func run(args []string, in io.Reader, out io.Writer) error {
	a := &app{in: in, out: out}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "movies",
		Short:         "Keep a catalog of movies in a local SQLite file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), flags)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "config/movies.yml", "path to config file (optional)")
	pf.StringVar(&flags.dbPath, "db", "", "path to the SQLite database (overrides config)")
	pf.BoolVar(&flags.debug, "debug", false, "verbose colored logs")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newFilterCmd(a),
		newCountLanguageCmd(a),
		newTopCmd(a),
		newDecadeCmd(a),
		newChartsCmd(a),
		newShellCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.dbPath != "" {
		cfg.DB.Path = flags.dbPath
	}
	if flags.debug {
		cfg.Debug = true
	}
	a.cfg = cfg
	a.log = logger.Setup(cfg.Debug)

	mgr, err := catalog.NewManager(a.log, cfg.DB.Path, catalog.WithBusyTimeout(cfg.DB.BusyTimeout))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.mgr = mgr

	if !cfg.SkipSeed {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, err := mgr.Seed(ctx); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}
	return nil
}

func (a *app) close() error {
	if a.mgr == nil {
		return nil
	}
	err := a.mgr.Close()
	a.mgr = nil
	return err
}
