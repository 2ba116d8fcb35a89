package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tweetdeleter/internal"
	"tweetdeleter/internal/credentials"
	"tweetdeleter/internal/destroyer"
	"tweetdeleter/internal/reader"
	"tweetdeleter/internal/spare"
)

func main() {
	configPath := flag.String("config", "credentials.json", "JSON or YAML file with the Twitter API keys")
	logLevel := flag.String("log-level", "info", "log verbosity: debug, info, warn or error")
	flag.Usage = usage

	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		log.Fatalf("Could not create zap logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	creds, err := credentials.Load(*configPath)
	if err != nil {
		logger.Fatal("could not load credentials", zap.String("path", *configPath), zap.Error(err))
	}
	logger.Debug("loaded credentials", zap.String("path", *configPath))

	args := flag.Args()
	if len(args) == 0 || args[0] != "delete" {
		usage()
		os.Exit(2)
	}

	opts, err := parseDeleteFlags(args[1:], flag.CommandLine.Output())
	if err != nil {
		logger.Fatal("invalid delete flags", zap.Error(err))
	}

	filter := reader.Config{
		Since:       opts.since,
		Until:       opts.until,
		Filters:     opts.filters,
		MinLikes:    opts.minLikes,
		MinRetweets: opts.minRetweets,
	}
	if opts.spareIDsPath != "" {
		filter.Spare, err = spare.Load(opts.spareIDsPath)
		if err != nil {
			logger.Fatal("could not load spare ids", zap.Error(err))
		}
		logger.Debug("loaded spare ids", zap.Int("count", len(filter.Spare)))
	}

	var d destroyer.Destroyer
	closeDestroyer := func() {}
	switch opts.backend {
	case "browser":
		b := destroyer.NewBrowser(destroyer.BrowserOptions{
			Username: opts.username,
			Password: opts.password,
			Headless: !opts.browserVisible,
			DryRun:   opts.dryRun,
			Logger:   logger.Named("browser"),
		})
		closeDestroyer = b.Close
		d = b
	default:
		d = destroyer.NewAPI(destroyer.APIOptions{
			Statuses: destroyer.NewTwitterClient(creds).Statuses,
			DryRun:   opts.dryRun,
			Logger:   logger.Named("api"),
		})
	}

	td, err := internal.NewTweetDeleter(internal.TweetDeleterOptions{
		ArchivePath: opts.tweetJSPath,
		Filter:      filter,
		Destroyer:   d,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("could not create TweetDeleter", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, err := td.Run(ctx)
	closeDestroyer()
	if err != nil {
		logger.Error("error running TweetDeleter", zap.Error(err), zap.Int("tweetsDeleted", res.Deleted))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
	if opts.dryRun {
		logger.Info("dry run, nothing was deleted", zap.Int("wouldDelete", res.Deleted))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [global flags] delete [delete flags]\n\nGlobal flags:\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nDelete flags:")
	_, _ = parseDeleteFlags([]string{"-h"}, out)
}
