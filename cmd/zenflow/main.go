package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/zenflow/zenflow/pkg/config"
	"github.com/zenflow/zenflow/pkg/domain"
	"github.com/zenflow/zenflow/pkg/leadfeed"
	"github.com/zenflow/zenflow/pkg/metrics"
	"github.com/zenflow/zenflow/pkg/repository"
	"github.com/zenflow/zenflow/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"zenflow.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database connection string, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting zenflow version %s", revision)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called explicitly
	}
	log.Print("[INFO] shutdown complete")
}

// run wires the lead history, the live feed and the http server and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	registry := metrics.NewRegistry()
	hub, err := server.NewHub(registry)
	if err != nil {
		return fmt.Errorf("failed to create live feed hub: %w", err)
	}

	feedCfg := cfg.GetFeedConfig()
	params := feedParams(feedCfg)
	ctrl := leadfeed.NewController(leadfeed.ControllerConfig{
		Params:   params,
		Surface:  hub,
		Random:   leadfeed.NewRandomSource(feedCfg.RandomSeed),
		Recorder: repos.Lead,
		Metrics:  registry,
		Seed:     seedLeads(feedCfg.Seed, params.Status, time.Now()),
	})
	defer ctrl.Stop()

	srv, err := server.New(server.Deps{
		Config:  cfg,
		DB:      repos.Lead,
		Feed:    ctrl,
		Hub:     hub,
		Metrics: registry.Handler(),
		Version: revision,
		Debug:   opts.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	if feedCfg.Paused {
		log.Printf("[INFO] live feed is paused, ticks on demand only")
	} else {
		log.Printf("[INFO] live feed every %v, threshold %.2f, max %d leads", params.Interval, params.Threshold, params.MaxSize)
		ctrl.Start(gctx)
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

// feedParams maps the feed section of the config to controller parameters
func feedParams(fc config.FeedConfig) leadfeed.Params {
	return leadfeed.Params{
		Interval:    fc.Interval,
		Threshold:   fc.Threshold,
		MaxSize:     fc.MaxSize,
		RevealDelay: fc.RevealDelay,
		Identities:  fc.Identities,
		Status:      domain.StatusLabel(fc.Keyword),
	}
}

// seedLeads makes the initial live list from configured handles, newest first
func seedLeads(handles []string, status string, now time.Time) []domain.Lead {
	return lo.Map(handles, func(h string, _ int) domain.Lead {
		return domain.Lead{ID: uuid.NewString(), Handle: h, Status: status, CreatedAt: now}
	})
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
