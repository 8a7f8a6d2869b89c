package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagetable/pagetable/internal/config"
	"github.com/pagetable/pagetable/internal/config/data"
	"github.com/pagetable/pagetable/internal/demo"
	"github.com/pagetable/pagetable/internal/logging"
	"github.com/pagetable/pagetable/internal/source"
	"github.com/pagetable/pagetable/internal/view"
)

const (
	appName    = "pagetable"
	appVersion = "0.1.0"

	defaultDemoAddr  = "127.0.0.1:8089"
	defaultDemoUsers = 1000
)

var (
	ptFlags  *data.Flags
	demoAddr string
	demoSize int
	demoLag  time.Duration
	rootCmd  = &cobra.Command{
		Use:   appName,
		Short: "A searchable, infinitely scrolling table for paged JSON APIs",
		Long:  `pagetable renders a paged JSON endpoint as a terminal table, loading pages as you scroll.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Serve a generated user listing and browse it",
		RunE:  runDemo,
	}
	sourcesCmd = &cobra.Command{
		Use:   "sources",
		Short: "List the named sources",
		RunE:  listSources,
	}
)

func init() {
	ptFlags = config.NewFlags()
	initFlags()

	demoCmd.Flags().StringVar(&demoAddr, "addr", defaultDemoAddr, "Demo server listen address")
	demoCmd.Flags().IntVar(&demoSize, "users", defaultDemoUsers, "Number of generated users")
	demoCmd.Flags().DurationVar(&demoLag, "latency", 0, "Artificial response latency")

	rootCmd.AddCommand(versionCmd, demoCmd, sourcesCmd)
}

func initFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(ptFlags.URL, "url", "", "Page endpoint")
	pf.StringVarP(ptFlags.Key, "key", "k", "", "Cache key scoping loaded pages")
	pf.StringVar(ptFlags.SearchColumn, "search-column", "", "Query parameter carrying the search text")
	pf.StringVar(ptFlags.Placeholder, "placeholder", "", "Search input placeholder")
	pf.StringVar(ptFlags.Columns, "columns", "", "Comma separated column ids")
	pf.IntVar(ptFlags.Debounce, "debounce", 0, "Search debounce in milliseconds, negative is immediate")
	pf.IntVarP(ptFlags.PageSize, "page-size", "p", 0, "Rows per page")
	pf.StringVarP(ptFlags.Source, "source", "s", "", "Named source from sources.ini")
	pf.Float32VarP(ptFlags.RefreshRate, "refresh", "r", 0, "Refresh rate in seconds, 0 disables")
	pf.StringVarP(ptFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(ptFlags.LogFile, "logFile", "", "Log file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// pruneFlags drops the flags the user did not set so they don't override
// the configuration.
func pruneFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	if !fs.Changed("refresh") {
		ptFlags.RefreshRate = nil
	}
	if !fs.Changed("logLevel") {
		ptFlags.LogLevel = nil
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}

	reg, err := source.Load(config.AppSourcesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	cfg := config.NewConfig(reg)
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	pruneFlags(cmd)

	return cfg, nil
}

func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	opts := logging.Options{
		Level:  cfg.Pagetable.Logger.Level,
		File:   cfg.Pagetable.Logger.File,
		SeqURL: cfg.Pagetable.Logger.SeqURL,
	}
	if opts.File == "" {
		opts.File = config.AppLogFile
	}
	if err := config.InitLogLoc(opts.File); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize log location: %w", err)
	}

	return logging.Setup(opts)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Refine(ptFlags); err != nil {
		return fmt.Errorf("failed to refine configuration: %w", err)
	}

	return runApp(cfg)
}

func runApp(cfg *config.Config) error {
	logger, closeFn, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	t := cfg.Pagetable.TableSettings()
	logger.Info("starting", "version", appVersion, "url", t.URL, "key", t.Key)

	app := view.NewApp(cfg, appVersion, logger)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	l, err := net.Listen("tcp", demoAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", demoAddr, err)
	}
	h := demo.NewHandler(demo.GenerateUsers(demoSize))
	h.SetDelay(demoLag)
	mux := http.NewServeMux()
	mux.Handle(demo.UsersPath, h)
	srv := http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("demo server failed", "error", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	cfg.Pagetable.SetTable(config.DemoTable("http://" + l.Addr().String() + demo.UsersPath))
	if err := cfg.Refine(ptFlags); err != nil {
		return fmt.Errorf("failed to refine configuration: %w", err)
	}

	return runApp(cfg)
}

func listSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := cfg.Sources()
	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, s.URL)
	}

	return nil
}
