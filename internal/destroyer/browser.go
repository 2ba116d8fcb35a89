package destroyer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Browser deletes tweets by driving a logged-in Chrome session, for accounts
// without API access.
type Browser struct {
	username string
	password string
	headless bool
	timeout  time.Duration
	dryRun   bool
	logger   *zap.Logger

	browserCtx context.Context
	cancel     []context.CancelFunc
}

type BrowserOptions struct {
	Username string
	Password string
	Headless bool
	// Timeout bounds the clicks for one tweet. Defaults to 30 seconds.
	Timeout time.Duration
	DryRun  bool
	Logger  *zap.Logger
}

// NewBrowser creates a Browser destroyer. Chrome is started on the first
// Destroy call.
func NewBrowser(opts BrowserOptions) *Browser {
	b := &Browser{
		username: opts.Username,
		password: opts.Password,
		headless: opts.Headless,
		timeout:  opts.Timeout,
		dryRun:   opts.DryRun,
		logger:   opts.Logger,
	}
	if b.timeout == 0 {
		b.timeout = 30 * time.Second
	}
	return b
}

// Destroy opens the tweet's page and deletes it through the "More" menu.
func (b *Browser) Destroy(ctx context.Context, id string) error {
	b.logger.Debug("delete tweet", zap.String("id", id), zap.Bool("dryRun", b.dryRun))
	if b.dryRun {
		return nil
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidID, id, err)
	}

	if b.browserCtx == nil {
		if err := b.start(ctx); err != nil {
			return err
		}
	}

	tctx, cancel := context.WithTimeout(b.browserCtx, b.timeout)
	defer cancel()
	if err := chromedp.Run(tctx, b.deleteTweet(id)); err != nil {
		return fmt.Errorf("delete tweet %s in browser: %w", id, err)
	}
	return nil
}

// Close shuts down Chrome if it was started.
func (b *Browser) Close() {
	for i := len(b.cancel) - 1; i >= 0; i-- {
		b.cancel[i]()
	}
	b.cancel = nil
	b.browserCtx = nil
}

func (b *Browser) start(ctx context.Context) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(
		ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", b.headless),
			chromedp.Flag("auto-open-devtools-for-tabs", false))...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(b.logger.Sugar().Debugf))
	b.cancel = []context.CancelFunc{cancelAlloc, cancelBrowser}

	if err := chromedp.Run(browserCtx, b.login()); err != nil {
		b.Close()
		return fmt.Errorf("error while attempting to login: %w", err)
	}
	b.browserCtx = browserCtx
	b.logger.Info("successfully logged in", zap.String("username", b.username))
	return nil
}

func (b *Browser) login() chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate("https://x.com/i/flow/login"),
		chromedp.WaitVisible(`input[name="text"]`),
		chromedp.Click(`input[name="text"]`),
		chromedp.SendKeys(`input[name="text"]`, b.username),
		chromedp.Sleep(1 * time.Second), // the Next button is not clickable right away
		chromedp.Click(`div[role="button"]:nth-of-type(6)`),
		chromedp.WaitVisible(`input[name="password"]`),
		chromedp.Click(`input[name="password"]`),
		chromedp.SendKeys(`input[name="password"]`, b.password),
		chromedp.Click(`div[data-testid="LoginForm_Login_Button"]`),
		chromedp.WaitVisible(`a[href="/explore"]`),
	}
}

func (b *Browser) deleteTweet(id string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(StatusURL(b.username, id)),
		chromedp.WaitVisible(`article[data-testid="tweet"]`),
		chromedp.Click(`article div[aria-label="More"]`),
		chromedp.Sleep(1 * time.Second), // waiting on the dropdown alone is flaky
		chromedp.WaitVisible(`div[data-testid="Dropdown"]`),
		chromedp.Click(`div[role="menuitem"]:first-child`),
		chromedp.WaitVisible(`div[role="button"][data-testid="confirmationSheetConfirm"]`),
		chromedp.Click(`div[role="button"][data-testid="confirmationSheetConfirm"]`),
	}
}

// StatusURL is the public page of a tweet.
func StatusURL(username, id string) string {
	return fmt.Sprintf("https://x.com/%s/status/%s", username, id)
}
