package internal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tweetdeleter/internal/archive"
	"tweetdeleter/internal/destroyer"
	"tweetdeleter/internal/reader"
)

// TweetDeleter deletes the archived tweets that match the provided filters
type TweetDeleter struct {
	archivePath string
	filter      reader.Config
	destroyer   destroyer.Destroyer
	logger      *zap.Logger
}

type TweetDeleterOptions struct {
	ArchivePath string
	Filter      reader.Config
	Destroyer   destroyer.Destroyer
	Logger      *zap.Logger
}

// Result counts the outcome of a run. In dry-run mode Deleted counts the
// tweets that would have been deleted.
type Result struct {
	Deleted int
	Failed  int
}

// NewTweetDeleter creates a new TweetDeleter object
func NewTweetDeleter(opts TweetDeleterOptions) (*TweetDeleter, error) {
	if opts.ArchivePath == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	if opts.Destroyer == nil {
		return nil, fmt.Errorf("destroyer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TweetDeleter{
		archivePath: opts.ArchivePath,
		filter:      opts.Filter,
		destroyer:   opts.Destroyer,
		logger:      logger,
	}, nil
}

// Run loads the archive and deletes every selected tweet, one at a time.
// A failed deletion is logged and skipped; only archive errors and context
// cancellation end the run early.
func (t *TweetDeleter) Run(ctx context.Context) (Result, error) {
	var res Result

	records, err := archive.Load(t.archivePath)
	if err != nil {
		return res, err
	}
	t.logger.Info("loaded archive", zap.String("path", t.archivePath), zap.Int("tweets", len(records)))

	for rec := range reader.New(records, t.filter, t.logger).Read() {
		if err := ctx.Err(); err != nil {
			t.logger.Info("stopping early", zap.Int("tweetsDeleted", res.Deleted), zap.Error(err))
			return res, err
		}

		if err := t.destroyer.Destroy(ctx, rec.ID); err != nil {
			res.Failed++
			t.logger.Error("failed to delete tweet", zap.String("id", rec.ID), zap.Error(err))
			continue
		}

		res.Deleted++
		if res.Deleted%100 == 0 {
			t.logger.Info(fmt.Sprintf("%d tweets deleted", res.Deleted))
		}
	}

	t.logger.Info("Number of deleted tweets",
		zap.Int("tweetsDeleted", res.Deleted), zap.Int("tweetsFailed", res.Failed))
	return res, nil
}
