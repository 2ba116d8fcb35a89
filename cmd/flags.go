package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"tweetdeleter/internal/reader"
)

type deleteOptions struct {
	tweetJSPath    string
	since          time.Time
	until          time.Time
	filters        map[reader.Kind]bool
	spareIDsPath   string
	minLikes       int
	minRetweets    int
	dryRun         bool
	backend        string
	username       string
	password       string
	browserVisible bool
}

// filterFlag collects repeated -filter values.
type filterFlag map[reader.Kind]bool

func (f filterFlag) String() string {
	kinds := make([]string, 0, len(f))
	for k := range f {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ",")
}

func (f filterFlag) Set(s string) error {
	k, err := reader.ParseKind(s)
	if err != nil {
		return err
	}
	f[k] = true
	return nil
}

// timeFlag parses a date or date-time; the timezone, if any, is dropped.
type timeFlag struct {
	t *time.Time
}

func (f timeFlag) String() string {
	if f.t == nil || f.t.IsZero() {
		return ""
	}
	return f.t.Format(time.DateTime)
}

func (f timeFlag) Set(s string) error {
	t, err := reader.ParseTime(s)
	if err != nil {
		return err
	}
	*f.t = t
	return nil
}

func parseDeleteFlags(args []string, output io.Writer) (*deleteOptions, error) {
	opts := &deleteOptions{filters: map[reader.Kind]bool{}}

	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.tweetJSPath, "tweetjs-path", "", "the tweet.js file from the Twitter data archive (required)")
	fs.Var(timeFlag{&opts.since}, "since", "only delete tweets after this date, e.g. 2020-01-31 or 2020-01-31T08:00:00")
	fs.Var(timeFlag{&opts.until}, "until", "only delete tweets before this date (default now)")
	fs.Var(filterFlag(opts.filters), "filter", "restrict to replies and/or retweets: reply or retweet, may be repeated")
	fs.StringVar(&opts.spareIDsPath, "spare-ids", "", "file with tweet ids to keep, one per line")
	fs.IntVar(&opts.minLikes, "spare-min-likes", 0, "keep tweets with at least this many likes (0 disables)")
	fs.IntVar(&opts.minRetweets, "spare-min-retweets", 0, "keep tweets with at least this many retweets (0 disables)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "don't do anything, just see what would happen")
	fs.StringVar(&opts.backend, "backend", "api", "how to delete tweets: api or browser")
	fs.StringVar(&opts.username, "username", "", "x/twitter account to log into (browser backend)")
	fs.StringVar(&opts.password, "password", "", "password for provided account (browser backend)")
	fs.BoolVar(&opts.browserVisible, "browser-visible", false, "show the browser window (browser backend)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if opts.tweetJSPath == "" {
		return nil, errors.New("tweetjs-path flag is required")
	}
	if opts.minLikes < 0 || opts.minRetweets < 0 {
		return nil, errors.New("spare thresholds must not be negative")
	}
	switch opts.backend {
	case "api":
	case "browser":
		if opts.username == "" {
			return nil, errors.New("username flag is required for the browser backend")
		}
		if opts.password == "" {
			return nil, errors.New("password flag is required for the browser backend")
		}
	default:
		return nil, fmt.Errorf("unknown backend %q (want api or browser)", opts.backend)
	}

	return opts, nil
}
