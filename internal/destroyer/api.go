package destroyer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"go.uber.org/zap"

	"tweetdeleter/internal/credentials"
)

// Twitter API error code for "Rate limit exceeded".
const codeRateLimited = 88

// StatusService is the part of the Twitter client used to delete tweets.
// *twitter.StatusService satisfies it.
type StatusService interface {
	Destroy(id int64, params *twitter.StatusDestroyParams) (*twitter.Tweet, *http.Response, error)
}

// NewTwitterClient returns a REST client signed with the user's OAuth1 keys.
func NewTwitterClient(creds *credentials.Credentials) *twitter.Client {
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessTokenKey, creds.AccessTokenSecret)
	return twitter.NewClient(config.Client(oauth1.NoContext, token))
}

// API deletes tweets through the REST API.
type API struct {
	statuses       StatusService
	dryRun         bool
	rateLimitDelay time.Duration
	attempts       uint
	logger         *zap.Logger
}

type APIOptions struct {
	Statuses StatusService
	DryRun   bool
	// RateLimitDelay is the first wait after a rate-limited response.
	// Defaults to one minute.
	RateLimitDelay time.Duration
	// RateLimitAttempts bounds the calls made for one tweet. Defaults to 16.
	RateLimitAttempts uint
	Logger            *zap.Logger
}

// NewAPI creates an API destroyer.
func NewAPI(opts APIOptions) *API {
	a := &API{
		statuses:       opts.Statuses,
		dryRun:         opts.DryRun,
		rateLimitDelay: opts.RateLimitDelay,
		attempts:       opts.RateLimitAttempts,
		logger:         opts.Logger,
	}
	if a.rateLimitDelay == 0 {
		a.rateLimitDelay = time.Minute
	}
	if a.attempts == 0 {
		a.attempts = 16
	}
	return a
}

// rateLimitError marks a response that should be retried after a pause.
type rateLimitError struct {
	err error
}

func (e *rateLimitError) Error() string { return "rate limited: " + e.err.Error() }
func (e *rateLimitError) Unwrap() error { return e.err }

// Destroy deletes the tweet with the given id, waiting out rate limits.
func (a *API) Destroy(ctx context.Context, id string) error {
	a.logger.Debug("delete tweet", zap.String("id", id), zap.Bool("dryRun", a.dryRun))
	if a.dryRun {
		return nil
	}

	tweetID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidID, id, err)
	}

	var status int
	err = retry.Do(
		func() error {
			_, resp, err := a.statuses.Destroy(tweetID, &twitter.StatusDestroyParams{TrimUser: twitter.Bool(true)})
			if resp != nil {
				status = resp.StatusCode
			}
			if err != nil && isRateLimited(resp, err) {
				return &rateLimitError{err: err}
			}
			return err
		},
		retry.Attempts(a.attempts),
		retry.Delay(a.rateLimitDelay),
		retry.MaxDelay(15*time.Minute),
		retry.MaxJitter(a.rateLimitDelay/10+1),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn("rate limited, backing off", zap.String("id", id), zap.Uint("attempt", n), zap.Error(err))
		}),
		retry.RetryIf(func(err error) bool {
			var rl *rateLimitError
			return errors.As(err, &rl)
		}),
	)
	if err != nil {
		return fmt.Errorf("destroy tweet %s (HTTP %d, code %d): %w", id, status, apiErrorCode(err), err)
	}
	return nil
}

func isRateLimited(resp *http.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErrorCode(err) == codeRateLimited
}

// apiErrorCode returns the first Twitter error code carried by err, or 0.
func apiErrorCode(err error) int {
	var apiErr twitter.APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		return apiErr.Errors[0].Code
	}
	return 0
}
