// Package reader selects the archived tweets that should be deleted.
package reader

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"tweetdeleter/internal/archive"
)

// Kind restricts deletion to one type of tweet.
type Kind string

const (
	Reply   Kind = "reply"
	Retweet Kind = "retweet"
)

const retweetPrefix = "RT @"

// ParseKind validates a filter name given on the command line.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Reply, Retweet:
		return k, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want reply or retweet)", s)
	}
}

// Config holds the selection criteria. Zero values disable a criterion,
// except Until which defaults to the current time.
type Config struct {
	Since       time.Time
	Until       time.Time
	Filters     map[Kind]bool
	Spare       map[string]struct{}
	MinLikes    int
	MinRetweets int
}

// Reader yields the records that pass every filter.
type Reader struct {
	records []archive.Record
	since   time.Time
	until   time.Time
	cfg     Config
	logger  *zap.Logger
}

// New creates a Reader over records. Bounds are compared as naive wall-clock
// time, so any location on since and until is dropped.
func New(records []archive.Record, cfg Config, logger *zap.Logger) *Reader {
	until := cfg.Until
	if until.IsZero() {
		until = time.Now()
	}
	return &Reader{
		records: records,
		since:   naive(cfg.Since),
		until:   naive(until),
		cfg:     cfg,
		logger:  logger,
	}
}

// Read returns the records to delete in archive order.
func (r *Reader) Read() iter.Seq[archive.Record] {
	return func(yield func(archive.Record) bool) {
		for _, rec := range r.records {
			if reason := r.skipReason(rec); reason != "" {
				r.logger.Debug("skipping tweet", zap.String("id", rec.ID), zap.String("reason", reason))
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func (r *Reader) skipReason(rec archive.Record) string {
	if rec.CreatedAt != "" {
		created, err := ParseTime(rec.CreatedAt)
		if err != nil {
			r.logger.Warn("unparseable created_at, ignoring date range",
				zap.String("id", rec.ID), zap.String("created_at", rec.CreatedAt), zap.Error(err))
		} else if !created.Before(r.until) || !created.After(r.since) {
			return "outside date range"
		}
	}

	// Each active filter excludes what it does not match; enabling both
	// therefore keeps only tweets that are a reply and a retweet at once.
	if (r.cfg.Filters[Retweet] && !strings.HasPrefix(rec.FullText, retweetPrefix)) ||
		(r.cfg.Filters[Reply] && rec.InReplyToUserID == "") {
		return "excluded by type filter"
	}

	if _, ok := r.cfg.Spare[rec.ID]; ok {
		return "spared"
	}

	if (r.cfg.MinLikes != 0 && int(rec.FavoriteCount) >= r.cfg.MinLikes) ||
		(r.cfg.MinRetweets != 0 && int(rec.RetweetCount) >= r.cfg.MinRetweets) {
		return "popular"
	}

	return ""
}

// ParseTime parses a timestamp and drops its timezone, keeping the
// wall-clock fields.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RubyDate, s)
	if err != nil {
		t, err = dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	return naive(t), nil
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
