package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/analysis"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/catalog"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/config"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/loader"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/logging"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/ui"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK     = 0
	exitIngest = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, term.IsTerminal(int(os.Stdout.Fd()))))
}

// run executes one gtv invocation and returns its exit code. interactive
// reports whether stdout is a terminal; without one the tree is dumped.
func run(args []string, stdout, stderr io.Writer, interactive bool) int {
	fs := flag.NewFlagSet("gtv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	stats := fs.Bool("stats", false, "Print catalog statistics and exit")
	asJSON := fs.Bool("json", false, "With -stats, print JSON instead of text")
	dump := fs.Bool("dump", false, "Print the term tree as text and exit")
	resolve := fs.String("resolve", "", "How reference leaves find their term: id or label")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion := fs.Bool("version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gtv [options] [file.obo-xml]")
		fmt.Fprintln(stderr, "\nBrowse the is_a references of a Gene Ontology OBO-XML catalog.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, "gtv version "+version)
		return exitOK
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "gtv: expected at most one file, got %d\n", fs.NArg())
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "gtv: %v\n", err)
		return exitUsage
	}
	if *resolve != "" {
		cfg.Resolve = *resolve
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if fs.NArg() == 1 {
		cfg.Catalog = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "gtv: %v\n", err)
		return exitUsage
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(stderr, level)
	defer func() { _ = logger.Sync() }()

	res, err := loader.LoadFile(cfg.Catalog)
	if err != nil {
		fmt.Fprintf(stderr, "gtv: %v\n", err)
		return exitIngest
	}
	store, dupes := catalog.FromTerms(res.Terms)
	warnings := append(res.Warnings, dupes...)
	logging.ReportWarnings(logger, cfg.Catalog, store.Len(), warnings)

	tm := tree.Build(store)
	switch {
	case *stats:
		s := analysis.ComputeCatalogStats(store)
		s.MostReferred = s.TopReferred(cfg.TopReferred)
		if err := writeStats(stdout, s, *asJSON); err != nil {
			fmt.Fprintf(stderr, "gtv: %v\n", err)
			return exitIngest
		}
		return exitOK
	case *dump || !interactive:
		if err := ui.Dump(stdout, tm); err != nil {
			fmt.Fprintf(stderr, "gtv: %v\n", err)
			return exitIngest
		}
		return exitOK
	}

	return runTUI(store, tm, cfg, stderr)
}

func writeStats(w io.Writer, s analysis.CatalogStats, asJSON bool) error {
	if !asJSON {
		return s.WriteText(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// runTUI owns the screen until the user quits. Logs go to the configured
// file, or nowhere, while the alt screen is up.
func runTUI(store *catalog.Store, tm *tree.Model, cfg *config.Config, stderr io.Writer) int {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	sessionLog, closeLog, err := logging.NewFile(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(stderr, "gtv: %v\n", err)
		sessionLog, closeLog = zap.NewNop(), func() error { return nil }
	}
	defer func() { _ = closeLog() }()

	m := ui.NewModel(store, tm, ui.Options{
		Source:       cfg.Catalog,
		Strategy:     cfg.Strategy(),
		FollowCursor: cfg.FollowCursor,
		ShowDetails:  cfg.ShowDetails,
		DetailsStyle: cfg.DetailsStyle,
		Logger:       sessionLog.Named("ui"),
	})
	sessionLog.Info("session started",
		zap.Int("terms", store.Len()),
		zap.String("resolve", string(cfg.Strategy())))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "gtv: error running viewer: %v\n", err)
		return exitIngest
	}
	return exitOK
}
